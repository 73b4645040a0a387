package content

import (
	"bytes"
	"errors"
)

var (
	errMissingFrontmatter      = errors.New("missing frontmatter: document must start with ---")
	errMissingClosingDelimiter = errors.New("invalid frontmatter: missing closing ---")
)

// SplitFrontmatter separates the `---` delimited YAML block at the top of a
// markdown document from its body.
func SplitFrontmatter(data []byte) (fm []byte, body []byte, err error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	nl := "\n"
	if bytes.Contains(data, []byte("\r\n")) {
		nl = "\r\n"
	}
	open := []byte("---" + nl)
	if !bytes.HasPrefix(data, open) {
		return nil, nil, errMissingFrontmatter
	}
	rest := data[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], nil
	}
	closing := []byte(nl + "---")
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		return nil, nil, errMissingClosingDelimiter
	}
	after := rest[idx+len(closing):]
	switch {
	case len(after) == 0:
	case bytes.HasPrefix(after, []byte(nl)):
		after = after[len(nl):]
	default:
		// "---" followed by more text on the same line is not a delimiter.
		return nil, nil, errMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], after, nil
}
