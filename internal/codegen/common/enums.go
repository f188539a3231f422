package common

import (
	"go/token"
	"strings"
)

// EnumMemberCase derives an enum member name from an upper-case macro
// suffix: the first character is kept, the rest is lower-cased.
// Examples: "ABC123" => "Abc123", "A" => "A", "XRGB8888" => "Xrgb8888".
// Digit/letter boundaries get no special treatment.
func EnumMemberCase(short string) string {
	if short == "" {
		return ""
	}
	return short[:1] + strings.ToLower(short[1:])
}

// IsExportedIdent reports whether name is a valid, exported Go identifier.
func IsExportedIdent(name string) bool {
	return token.IsIdentifier(name) && token.IsExported(name)
}
