// Package rewrite desugars unit-suffixed integer literals such as 100kryo.
//
// Go source cannot carry a literal suffix, so a file goes through two steps.
// Prepare scans the raw text, blanks every registered unit that directly
// follows an integer literal and remembers the literal's byte offset. After
// parsing, Rewrite replaces each remembered literal with (value * scale).
package rewrite

import (
	"go/scanner"
	"go/token"
	"sort"
	"strconv"

	"github.com/dave/dst"
	"github.com/dave/dst/dstutil"
)

// KryoScale is the number of base units in one kryo
const KryoScale int64 = 1000000

// DefaultUnits returns the built-in unit table
func DefaultUnits() map[string]int64 {
	return map[string]int64{"kryo": KryoScale}
}

// Rewriter holds the unit table used by Prepare and Rewrite
type Rewriter struct {
	units map[string]int64
}

// New creates a Rewriter. A nil or empty table falls back to DefaultUnits.
func New(units map[string]int64) *Rewriter {
	if len(units) == 0 {
		units = DefaultUnits()
	}
	copied := make(map[string]int64, len(units))
	for unit, scale := range units {
		copied[unit] = scale
	}
	return &Rewriter{units: copied}
}

// Units returns the registered unit names in sorted order
func (r *Rewriter) Units() []string {
	names := make([]string, 0, len(r.units))
	for unit := range r.units {
		names = append(names, unit)
	}
	sort.Strings(names)
	return names
}

// Scale returns the multiplier of a unit
func (r *Rewriter) Scale(unit string) (int64, bool) {
	scale, ok := r.units[unit]
	return scale, ok
}

// Source is a contract file with its unit suffixes removed
type Source struct {
	Filename string
	Text     []byte

	// Literals maps the byte offset of each suffixed integer literal to its unit
	Literals map[int]string
}

// Prepare blanks registered unit suffixes so the text parses as Go. Every
// suffix is replaced by the same number of spaces, so all offsets and
// positions stay valid for the original file. Suffixes that are not
// registered are left in place.
func (r *Rewriter) Prepare(filename string, src []byte) *Source {
	text := make([]byte, len(src))
	copy(text, src)

	fset := token.NewFileSet()
	file := fset.AddFile(filename, -1, len(src))

	var s scanner.Scanner
	s.Init(file, src, nil, 0)

	literals := make(map[int]string)
	prevInt, prevEnd := -1, -1
	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		offset := file.Offset(pos)

		if tok == token.IDENT && prevInt >= 0 && offset == prevEnd {
			if _, ok := r.units[lit]; ok {
				literals[prevInt] = lit
				for i := offset; i < offset+len(lit); i++ {
					text[i] = ' '
				}
			}
		}

		if tok == token.INT {
			prevInt, prevEnd = offset, offset+len(lit)
		} else {
			prevInt, prevEnd = -1, -1
		}
	}

	return &Source{Filename: filename, Text: text, Literals: literals}
}

// UnitLookup reports the unit recorded for an integer literal
type UnitLookup func(lit *dst.BasicLit) (string, bool)

// Rewrite returns (value * scale) for an integer literal carrying a registered
// unit and returns expr unchanged otherwise. It does not descend into expr.
func (r *Rewriter) Rewrite(expr dst.Expr, lookup UnitLookup) dst.Expr {
	lit, ok := expr.(*dst.BasicLit)
	if !ok || lit.Kind != token.INT || lookup == nil {
		return expr
	}
	unit, ok := lookup(lit)
	if !ok {
		return expr
	}
	scale, ok := r.units[unit]
	if !ok {
		return expr
	}

	product := &dst.ParenExpr{
		X: &dst.BinaryExpr{
			X:  &dst.BasicLit{Kind: token.INT, Value: lit.Value},
			Op: token.MUL,
			Y:  &dst.BasicLit{Kind: token.INT, Value: strconv.FormatInt(scale, 10)},
		},
	}
	product.Decs.NodeDecs = lit.Decs.NodeDecs
	return product
}

// RewriteAll applies Rewrite at every expression position below root and
// returns the number of literals replaced.
func (r *Rewriter) RewriteAll(root dst.Node, lookup UnitLookup) int {
	replaced := 0
	dstutil.Apply(root, func(c *dstutil.Cursor) bool {
		if r.RewriteCursor(c, lookup) {
			replaced++
		}
		return true
	}, nil)
	return replaced
}

// RewriteCursor rewrites the node under the cursor in place and reports
// whether a replacement happened.
func (r *Rewriter) RewriteCursor(c *dstutil.Cursor, lookup UnitLookup) bool {
	expr, ok := c.Node().(dst.Expr)
	if !ok {
		return false
	}
	rewritten := r.Rewrite(expr, lookup)
	if rewritten == expr {
		return false
	}
	c.Replace(rewritten)
	return true
}
