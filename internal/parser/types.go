package parser

import (
	"fmt"
	"strings"

	"github.com/dave/dst"
)

// UnsupportedTypeError reports a type expression with no manifest form
type UnsupportedTypeError struct {
	Kind string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s types have no manifest representation", e.Kind)
}

// RenderType returns the manifest text of a type expression. Pointer markers
// are dropped and no whitespace is emitted, so *kryolite.Address renders as
// kryolite.Address and map[string]uint64 as map[string]uint64.
func RenderType(expr dst.Expr) (string, error) {
	var b strings.Builder
	if err := renderType(&b, expr); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderType(b *strings.Builder, expr dst.Expr) error {
	switch t := expr.(type) {
	case *dst.Ident:
		if t.Path != "" {
			b.WriteString(t.Path[strings.LastIndex(t.Path, "/")+1:])
			b.WriteString(".")
		}
		b.WriteString(t.Name)
	case *dst.StarExpr:
		return renderType(b, t.X)
	case *dst.ParenExpr:
		return renderType(b, t.X)
	case *dst.SelectorExpr:
		if err := renderType(b, t.X); err != nil {
			return err
		}
		b.WriteString(".")
		b.WriteString(t.Sel.Name)
	case *dst.ArrayType:
		b.WriteString("[")
		if t.Len != nil {
			if err := renderLength(b, t.Len); err != nil {
				return err
			}
		}
		b.WriteString("]")
		return renderType(b, t.Elt)
	case *dst.MapType:
		b.WriteString("map[")
		if err := renderType(b, t.Key); err != nil {
			return err
		}
		b.WriteString("]")
		return renderType(b, t.Value)
	case *dst.IndexExpr:
		if err := renderType(b, t.X); err != nil {
			return err
		}
		b.WriteString("[")
		if err := renderType(b, t.Index); err != nil {
			return err
		}
		b.WriteString("]")
	case *dst.IndexListExpr:
		if err := renderType(b, t.X); err != nil {
			return err
		}
		b.WriteString("[")
		for i, index := range t.Indices {
			if i > 0 {
				b.WriteString(",")
			}
			if err := renderType(b, index); err != nil {
				return err
			}
		}
		b.WriteString("]")
	case *dst.InterfaceType:
		if t.Methods != nil && len(t.Methods.List) > 0 {
			return &UnsupportedTypeError{Kind: "non-empty interface"}
		}
		b.WriteString("interface{}")
	case *dst.Ellipsis:
		return &UnsupportedTypeError{Kind: "variadic"}
	case *dst.FuncType:
		return &UnsupportedTypeError{Kind: "func"}
	case *dst.ChanType:
		return &UnsupportedTypeError{Kind: "chan"}
	case *dst.StructType:
		return &UnsupportedTypeError{Kind: "anonymous struct"}
	default:
		return &UnsupportedTypeError{Kind: fmt.Sprintf("%T", expr)}
	}
	return nil
}

// renderLength renders an array length written as a literal, a constant
// name or constant arithmetic over them
func renderLength(b *strings.Builder, expr dst.Expr) error {
	switch l := expr.(type) {
	case *dst.BasicLit:
		b.WriteString(l.Value)
		return nil
	case *dst.Ident:
		b.WriteString(l.Name)
		return nil
	case *dst.SelectorExpr:
		return renderType(b, l)
	case *dst.Ellipsis:
		b.WriteString("...")
		return nil
	case *dst.ParenExpr:
		b.WriteByte('(')
		if err := renderLength(b, l.X); err != nil {
			return err
		}
		b.WriteByte(')')
		return nil
	case *dst.BinaryExpr:
		// constant arithmetic, as left by the unit rewrite
		if err := renderLength(b, l.X); err != nil {
			return err
		}
		b.WriteString(l.Op.String())
		return renderLength(b, l.Y)
	}
	return &UnsupportedTypeError{Kind: "computed array length"}
}
