package views

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

const adminStyle = `body{font-family:system-ui,sans-serif;margin:2rem auto;max-width:960px;color:#1c1917}` +
	`table{border-collapse:collapse;width:100%}td,th{border-bottom:1px solid #e7e5e4;padding:.5rem;text-align:left;vertical-align:top}` +
	`img{max-width:240px;border-radius:4px}pre{white-space:pre-wrap;font-size:11px;background:#f5f5f4;padding:.5rem}` +
	`.error{color:#b91c1c}`

func page(title string, body func(*bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html>\n<html lang=\"zh-TW\"><head><meta charset=\"utf-8\">")
		buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		fmt.Fprintf(&buf, "<title>%s</title><style>%s</style></head><body>", templ.EscapeString(title), adminStyle)
		body(&buf)
		buf.WriteString("</body></html>")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func csrfField(buf *bytes.Buffer, token string) {
	fmt.Fprintf(buf, `<input type="hidden" name="_csrf" value="%s">`, templ.EscapeString(token))
}

// AdminLogin renders the password form.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return page("Admin login", func(buf *bytes.Buffer) {
		buf.WriteString("<h1>Admin</h1>")
		if showError {
			buf.WriteString(`<p class="error">Invalid password.</p>`)
		}
		buf.WriteString(`<form method="post" action="/admin/login/">`)
		csrfField(buf, csrfToken)
		buf.WriteString(`<input type="password" name="password" autofocus required> <button type="submit">Log in</button></form>`)
	})
}

// AdminDashboard lists every published post with its OG image and the meta
// tags a page for it would carry.
func AdminDashboard(siteName string, posts []DashboardPost, csrfToken string) templ.Component {
	return page(siteName+" admin", func(buf *bytes.Buffer) {
		fmt.Fprintf(buf, "<h1>%s</h1>", templ.EscapeString(siteName))
		buf.WriteString(`<form method="post" action="/admin/logout/">`)
		csrfField(buf, csrfToken)
		buf.WriteString(`<button type="submit">Log out</button></form>`)

		buf.WriteString(`<h2>Preview</h2><form method="get" action="/admin/og/preview.png" target="_blank">`)
		buf.WriteString(`<input name="title" placeholder="Title"> <input name="description" placeholder="Description"> <button type="submit">Render</button></form>`)

		fmt.Fprintf(buf, "<h2>Posts (%d)</h2>", len(posts))
		if len(posts) == 0 {
			buf.WriteString("<p>No published posts.</p>")
			return
		}
		buf.WriteString("<table><thead><tr><th>Image</th><th>Post</th><th>Meta</th></tr></thead><tbody>")
		for _, p := range posts {
			var meta bytes.Buffer
			writeMeta(&meta, p.Meta)
			fmt.Fprintf(buf, `<tr id="post-%s"><td><a href="%s"><img src="%s" alt="" loading="lazy"></a></td>`,
				templ.EscapeString(p.ID), templ.EscapeString(p.ImagePath), templ.EscapeString(p.ImagePath))
			fmt.Fprintf(buf, `<td><strong>%s</strong><br><code>%s</code><p>%s</p></td>`,
				templ.EscapeString(p.Title), templ.EscapeString(p.ID), templ.EscapeString(Truncate(p.Description, 160)))
			fmt.Fprintf(buf, "<td><pre>%s</pre></td></tr>", templ.EscapeString(meta.String()))
		}
		buf.WriteString("</tbody></table>")
	})
}

// ErrorPage renders a minimal error document for HTML routes.
func ErrorPage(code int) templ.Component {
	text := http.StatusText(code)
	return page(text, func(buf *bytes.Buffer) {
		fmt.Fprintf(buf, "<h1>%d</h1><p>%s</p>", code, templ.EscapeString(text))
	})
}
