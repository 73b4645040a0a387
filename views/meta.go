package views

import (
	"bytes"
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// OGMeta renders the OpenGraph and Twitter card <meta> tags for a page.
// Image tags are emitted only when m.Image is set.
func OGMeta(m PageMeta) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writeMeta(&buf, m)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeMeta(buf *bytes.Buffer, m PageMeta) {
	ogType := m.OGType
	if ogType == "" {
		ogType = "website"
	}
	property(buf, "og:type", ogType)
	if m.SiteName != "" {
		property(buf, "og:site_name", m.SiteName)
	}
	property(buf, "og:title", m.Title)
	property(buf, "og:description", m.Description)
	if m.URL != "" {
		property(buf, "og:url", m.URL)
	}

	card := "summary"
	if m.Image != "" {
		card = "summary_large_image"
		property(buf, "og:image", m.Image)
		if m.ImageWidth > 0 && m.ImageHeight > 0 {
			property(buf, "og:image:width", strconv.Itoa(m.ImageWidth))
			property(buf, "og:image:height", strconv.Itoa(m.ImageHeight))
		}
		property(buf, "og:image:type", "image/png")
	}
	name(buf, "twitter:card", card)
	name(buf, "twitter:title", m.Title)
	name(buf, "twitter:description", m.Description)
	if m.Image != "" {
		name(buf, "twitter:image", m.Image)
	}
}

func property(buf *bytes.Buffer, key, value string) {
	buf.WriteString(`<meta property="`)
	buf.WriteString(templ.EscapeString(key))
	buf.WriteString(`" content="`)
	buf.WriteString(templ.EscapeString(value))
	buf.WriteString("\">\n")
}

func name(buf *bytes.Buffer, key, value string) {
	buf.WriteString(`<meta name="`)
	buf.WriteString(templ.EscapeString(key))
	buf.WriteString(`" content="`)
	buf.WriteString(templ.EscapeString(value))
	buf.WriteString("\">\n")
}
