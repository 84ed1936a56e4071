package email

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/smtp"
	"time"

	"github.com/emersion/go-message/mail"
)

// smtpMailer submits mail over SMTP with STARTTLS and PLAIN auth, building a
// multipart/alternative body (text fallback plus HTML).
type smtpMailer struct {
	host        string
	addr        string
	username    string
	password    string
	fromAddress string
	fromName    string
}

func (m *smtpMailer) Send(to, subject, html, text string) error {
	msg, err := m.buildMessage(to, subject, html, text)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(m.addr, auth, m.fromAddress, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", m.addr, err)
	}
	log.Printf("[MAILER] Email sent via SMTP to %s", to)
	return nil
}

func (m *smtpMailer) buildMessage(to, subject, html, text string) ([]byte, error) {
	var buf bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Name: m.fromName, Address: m.fromAddress}})
	h.SetAddressList("To", []*mail.Address{{Address: to}})
	h.SetSubject(subject)

	mw, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return nil, err
	}
	iw, err := mw.CreateInline()
	if err != nil {
		return nil, err
	}
	// Text part first so HTML-capable clients prefer the later part.
	var th mail.InlineHeader
	th.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	tp, err := iw.CreatePart(th)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(tp, text); err != nil {
		return nil, err
	}
	tp.Close()

	if html != "" {
		var hh mail.InlineHeader
		hh.SetContentType("text/html", map[string]string{"charset": "utf-8"})
		hp, err := iw.CreatePart(hh)
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(hp, html); err != nil {
			return nil, err
		}
		hp.Close()
	}
	iw.Close()
	mw.Close()
	return buf.Bytes(), nil
}
