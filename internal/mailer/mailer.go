// Package mailer delivers account verification emails.  The core only
// needs the narrow Mailer contract; the SMTP implementation below is the
// production transport.
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Mailer sends a verification link to a freshly signed-up user.  A non-nil
// error means delivery failed and the signup as a whole must be reported
// as failed, even though the user record is already persisted.
type Mailer interface {
	SendVerification(ctx context.Context, email, token, name string) error
}

// SMTP sends verification emails through an SMTP relay with STARTTLS and
// PLAIN auth.  The auth username doubles as the From address.
type SMTP struct {
	client      *mail.Client
	from        string
	frontendURL string
}

// NewSMTP builds the SMTP mailer.  The client connects lazily, so a bad
// relay address only surfaces on the first send.
func NewSMTP(host string, port int, username, password, frontendURL string) (*SMTP, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, err
	}
	return &SMTP{client: client, from: username, frontendURL: frontendURL}, nil
}

// SendVerification emails an HTML message containing the verification
// link <frontendURL>?verify=<token>.
func (s *SMTP) SendVerification(ctx context.Context, email, token, name string) error {
	link := fmt.Sprintf("%s?verify=%s", s.frontendURL, token)

	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return err
	}
	if err := msg.To(email); err != nil {
		return err
	}
	msg.Subject("Verify Your Email - Media Tracker")
	msg.SetBodyString(mail.TypeTextHTML, verificationBody(name, link))

	return s.client.DialAndSendWithContext(ctx, msg)
}

func verificationBody(name, link string) string {
	return fmt.Sprintf(`<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h2 style="color: #26c6da;">Welcome to Media Tracker, %s!</h2>
      <p>Thank you for signing up. Please verify your email address to complete your registration.</p>
      <div style="margin: 30px 0;">
        <a href="%s"
           style="background: linear-gradient(135deg, #26c6da 0%%, #00acc1 100%%);
                  color: white;
                  padding: 12px 30px;
                  text-decoration: none;
                  border-radius: 8px;
                  display: inline-block;
                  font-weight: bold;">
          Verify Email
        </a>
      </div>
      <p style="color: #666; font-size: 14px;">
        Or copy and paste this link into your browser:<br>
        <a href="%s" style="color: #26c6da;">%s</a>
      </p>
      <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
      <p style="color: #999; font-size: 12px;">
        If you didn't create an account, you can safely ignore this email.
      </p>
    </div>
  </body>
</html>`, name, link, link, link)
}
