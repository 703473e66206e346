package annotations

import (
	"fmt"
	"go/token"
	"strings"
)

// ValidateIdentifier checks that a value is a Go identifier, optionally package qualified
func ValidateIdentifier(v interface{}) error {
	name, ok := v.(string)
	if !ok {
		return fmt.Errorf("must be a string, got %T", v)
	}
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return fmt.Errorf("must be an identifier or pkg.Identifier, got '%s'", name)
	}
	for _, part := range parts {
		if !token.IsIdentifier(part) {
			return fmt.Errorf("must be an identifier or pkg.Identifier, got '%s'", name)
		}
	}
	return nil
}

// ValidateIdentifierList checks that every entry is a plain Go identifier
func ValidateIdentifierList(v interface{}) error {
	names, ok := v.([]string)
	if !ok {
		return fmt.Errorf("must be a list of identifiers, got %T", v)
	}
	if len(names) == 0 {
		return fmt.Errorf("must list at least one method")
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if !token.IsIdentifier(name) {
			return fmt.Errorf("'%s' is not a method name", name)
		}
		if seen[name] {
			return fmt.Errorf("method '%s' is listed twice", name)
		}
		seen[name] = true
	}
	return nil
}
