package services

import (
	"path/filepath"
	"strings"
	"unicode"
)

// SafeFilename keeps letters, digits, '-', '_', '.' and spaces and drops
// everything else, so path separators never survive.
func SafeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// SecureFilename is the ASCII-only variant used for names that are stored
// without a generated prefix. Whitespace runs become '_' and leading or
// trailing dots and underscores are removed, so "../x" cannot escape.
func SecureFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.Join(strings.Fields(name), "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "._")
}

// fileExtension returns the lower-cased extension without the dot.
func fileExtension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
