// Package notifier sends transactional confirmation email through an SMTP
// relay. Delivery is fire-and-forget: callers log failures and never block a
// user-visible response on the outcome.
package notifier

import (
	"bytes"
	"fmt"
	"net/smtp"
	"net/url"
	"strings"
)

// Config carries SMTP relay settings and the public base URL used to build
// unsubscribe links.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
	BaseURL  string
}

// EmailService sends subscription confirmations. When the relay credentials
// are empty the service runs in dev mode and silently skips delivery, which
// keeps local development working without an SMTP account.
type EmailService struct {
	config  Config
	devMode bool
}

// NewEmailService constructs an EmailService from the given config.
func NewEmailService(config Config) *EmailService {
	devMode := config.Username == "" || config.Password == ""
	return &EmailService{config: config, devMode: devMode}
}

// Confirmation is the display data for one subscription confirmation email.
type Confirmation struct {
	Email                 string
	SeatNumbers           []string
	SpecificallyRequested bool
	MovieName             string
	TheaterName           string
	DateLocal             string
	TimeLocal             string
	SeatingURL            string
	ShowtimeID            uint64
}

// SendConfirmation renders and sends the confirmation email. The message
// summarizes the watched seats ("Any" when the subscriber did not request
// specific seats), links to the seating map, and carries a bulk unsubscribe
// link scoped to this showtime and address.
func (s *EmailService) SendConfirmation(c Confirmation) error {
	subject := fmt.Sprintf("Watching seats for %s on %s", c.MovieName, c.DateLocal)
	return s.send(c.Email, subject, s.buildConfirmationHTML(c))
}

// buildConfirmationHTML renders the confirmation body.
func (s *EmailService) buildConfirmationHTML(c Confirmation) string {
	seats := "Any"
	if c.SpecificallyRequested {
		seats = strings.Join(c.SeatNumbers, ", ")
	}
	unsubURL := fmt.Sprintf("%s/unsubscribe/%d/%s",
		s.config.BaseURL, c.ShowtimeID, url.PathEscape(c.Email))

	return fmt.Sprintf(`<!DOCTYPE html><html><body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f5f5f5;">
    <table width="100%%" border="0" cellspacing="0" cellpadding="0" bgcolor="#f5f5f5"><tr><td align="center" style="padding:40px 0;">
    <table width="600" border="0" cellspacing="0" cellpadding="0" bgcolor="#ffffff" style="border-radius:16px;overflow:hidden;">
    <tr><td height="8" bgcolor="#5A31F4" style="line-height:8px;font-size:8px;">&nbsp;</td></tr>
    <tr><td align="left" style="padding:35px 40px;"><h1 style="margin:0;color:#5A31F4;font-size:24px;font-weight:bold;letter-spacing:1px;">SEATWATCH</h1></td></tr>
    <tr><td style="padding:10px 40px 40px 40px;"><p style="font-size:18px;color:#666666;margin:0 0 10px 0;">You're watching seats for</p>
    <h2 style="font-size:30px;font-weight:bold;color:#000000;margin:0 0 30px 0;line-height:1.2;">%s</h2>
    <table width="100%%" border="0" cellpadding="15" bgcolor="#fafafa" style="margin-bottom:20px;border-left:4px solid #5A31F4;">
    <tr><td><small style="color:#999999;text-transform:uppercase;">Theater</small><br/><strong>%s</strong></td></tr>
    <tr><td><small style="color:#999999;text-transform:uppercase;">Date &amp; Time</small><br/><strong>%s at %s</strong></td></tr>
    <tr><td><small style="color:#999999;text-transform:uppercase;">Seats</small><br/><strong>%s</strong></td></tr>
    </table>
    <p>We'll email you as soon as one of these seats opens up.</p>
    <table border="0" cellspacing="0" cellpadding="0"><tr><td bgcolor="#5A31F4" style="border-radius:50px;padding:15px 35px;"><a href="%s" style="color:#ffffff;text-decoration:none;font-weight:bold;">VIEW SEATING MAP</a></td></tr></table>
    <p style="margin-top:30px;font-size:12px;color:#999999;">No longer interested? <a href="%s" style="color:#5A31F4;">Unsubscribe from this showtime</a>.</p>
    </td></tr></table></td></tr></table></body></html>`,
		c.MovieName, c.TheaterName, c.DateLocal, c.TimeLocal, seats, c.SeatingURL, unsubURL)
}

// send assembles an HTML MIME message and pushes it through the relay.
func (s *EmailService) send(to, subject, htmlBody string) error {
	if s.devMode {
		return nil
	}
	addr := fmt.Sprintf("%s:%s", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	var body bytes.Buffer
	body.WriteString(fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n",
		s.config.FromName, s.config.From, to, subject, htmlBody))
	return smtp.SendMail(addr, auth, s.config.From, []string{to}, body.Bytes())
}
