package mailer

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"
)

// Message fills either layout. Body is trusted HTML built by the caller
// from escaped values.
type Message struct {
	SiteName string
	Subject  string
	Title    string
	Body     template.HTML
}

var userTmpl = template.Must(template.New("user").Parse(`<!doctype html>
<html><body style="margin:0;background:#f6f4ef;font-family:Helvetica,Arial,sans-serif;color:#222">
<table width="100%" cellpadding="0" cellspacing="0"><tr><td align="center" style="padding:32px 12px">
<table width="560" cellpadding="0" cellspacing="0" style="background:#fff;border-radius:8px">
<tr><td style="padding:28px 32px 8px;font-size:13px;letter-spacing:.08em;text-transform:uppercase;color:#8a6d3b">{{.SiteName}}</td></tr>
<tr><td style="padding:0 32px;font-size:22px;font-weight:bold">{{.Title}}</td></tr>
<tr><td style="padding:16px 32px 28px;font-size:15px;line-height:1.55">{{.Body}}</td></tr>
</table>
<p style="font-size:12px;color:#888">{{.SiteName}}</p>
</td></tr></table>
</body></html>`))

var adminTmpl = template.Must(template.New("admin").Parse(`<!doctype html>
<html><body style="font-family:Menlo,Consolas,monospace;font-size:14px;color:#111">
<h2 style="margin:0 0 12px">{{.Title}}</h2>
<div>{{.Body}}</div>
<hr style="margin-top:24px;border:0;border-top:1px solid #ddd">
<p style="color:#777;font-size:12px">Aviso automático de {{.SiteName}}</p>
</body></html>`))

// UserEmail renders the donor/visitor facing layout.
func UserEmail(m Message) (text, html string, err error) {
	return render(userTmpl, m)
}

// AdminEmail renders the compact layout used for staff notifications.
func AdminEmail(m Message) (text, html string, err error) {
	return render(adminTmpl, m)
}

func render(t *template.Template, m Message) (string, string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, m); err != nil {
		return "", "", err
	}
	return m.Title + "\n\n" + plain(string(m.Body)), buf.String(), nil
}

var (
	tagRe   = regexp.MustCompile(`<[^>]+>`)
	blankRe = regexp.MustCompile(`\n{3,}`)
)

func plain(h string) string {
	h = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "</p>", "\n\n", "</li>", "\n").Replace(h)
	h = tagRe.ReplaceAllString(h, "")
	h = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&#39;", "'", "&#34;", `"`).Replace(h)
	return strings.TrimSpace(blankRe.ReplaceAllString(h, "\n\n"))
}
