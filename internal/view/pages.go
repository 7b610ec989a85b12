// Package view renders the small set of human-facing HTML pages served on
// unsubscribe links. Pages are self-contained (inline styles, no assets)
// because they are opened from email clients.
package view

import (
	"bytes"
	"html/template"
	"strconv"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f5f5f5;">
  <div style="max-width:560px;margin:60px auto;background:#ffffff;border-radius:16px;overflow:hidden;">
    <div style="height:8px;background:#5A31F4;"></div>
    <div style="padding:35px 40px;">
      <h1 style="margin:0 0 20px 0;color:#5A31F4;font-size:22px;letter-spacing:1px;">SEATWATCH</h1>
      <h2 style="margin:0 0 16px 0;color:#000000;font-size:26px;">{{.Heading}}</h2>
      <p style="color:#444444;font-size:16px;line-height:1.5;">{{.Body}}</p>
      {{if .Details}}
      <table style="width:100%;background:#fafafa;border-left:4px solid #5A31F4;margin-top:20px;" cellpadding="12">
        {{range .Details}}<tr><td><small style="color:#999999;text-transform:uppercase;">{{.Label}}</small><br/><strong>{{.Value}}</strong></td></tr>{{end}}
      </table>
      {{end}}
    </div>
  </div>
</body>
</html>
`))

type detail struct {
	Label string
	Value string
}

type pageData struct {
	Title   string
	Heading string
	Body    string
	Details []detail
}

func render(data pageData) (string, error) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// InvalidLink is shown when an unsubscribe reference matches nothing. The
// page is served with a success status: these links are long-lived, widely
// distributed and often clicked twice.
func InvalidLink() (string, error) {
	return render(pageData{
		Title:   "Invalid link",
		Heading: "This link is no longer valid",
		Body:    "The unsubscribe link you followed has expired or was already used. No changes were made.",
	})
}

// UnsubscribedSeat confirms removal of a single seat notification.
func UnsubscribedSeat(seat, movie, theater, dateLocal, timeLocal string) (string, error) {
	return render(pageData{
		Title:   "Unsubscribed",
		Heading: "You're unsubscribed",
		Body:    "You will no longer receive availability alerts for this seat.",
		Details: []detail{
			{Label: "Movie", Value: movie},
			{Label: "Theater", Value: theater},
			{Label: "Date", Value: dateLocal},
			{Label: "Time", Value: timeLocal},
			{Label: "Seat", Value: seat},
		},
	})
}

// UnsubscribedBulk confirms removal of every notification for one showtime,
// with grammatically correct wording for one versus many.
func UnsubscribedBulk(removed int64, movie, theater, dateLocal, timeLocal string) (string, error) {
	return render(pageData{
		Title:   "Unsubscribed",
		Heading: "You're unsubscribed",
		Body:    "Unsubscribed from " + CountPhrase(removed) + " for this showtime.",
		Details: []detail{
			{Label: "Movie", Value: movie},
			{Label: "Theater", Value: theater},
			{Label: "Date", Value: dateLocal},
			{Label: "Time", Value: timeLocal},
		},
	})
}

// CountPhrase renders "1 seat notification" or "N seat notifications".
func CountPhrase(n int64) string {
	if n == 1 {
		return "1 seat notification"
	}
	return strconv.FormatInt(n, 10) + " seat notifications"
}
