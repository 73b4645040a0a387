package content

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// IDFromPath derives an entry id from its collection-relative path: the
// extension is dropped and every path segment is slugged.
//
//	"Hello World.md"         -> "hello-world"
//	"2024/Odoo 17 新功能.mdx" -> "2024/odoo-17-新功能"
func IDFromPath(rel string) string {
	rel = strings.ReplaceAll(rel, "\\", "/")
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	return normalizeID(rel)
}

func normalizeID(id string) string {
	var parts []string
	for _, seg := range strings.Split(id, "/") {
		if s := Slug(seg); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// Slug lowercases s, turns spaces into hyphens and drops punctuation.
// Letters and digits of any script are kept, so CJK titles survive.
func Slug(s string) string {
	s = norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.Is(unicode.Mn, r), r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
