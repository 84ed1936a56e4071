package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"ctfwatch/internal/domain"
)

// eventURLBase is the public page for one event, keyed by slug.
const eventURLBase = "https://ctf.hackthebox.com/event/"

type notifyService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	to       string
}

// NewNotifyService returns a Notifier that renders the "initial" or
// "reminder" email template and sends it to the configured recipient.
func NewNotifyService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, to string) domain.Notifier {
	return &notifyService{mailer: mailer, renderer: renderer, to: to}
}

func (s *notifyService) Send(ctx context.Context, kind domain.NotificationKind, event *domain.EventDetail, token string) error {
	if event == nil {
		return &domain.SendError{Kind: kind, Err: fmt.Errorf("event detail is nil")}
	}
	data := &domain.EventEmailData{
		Name:      event.Name,
		Organizer: event.Organizer,
		Starts:    formatEventTime(event.StartsAt),
		Ends:      formatEventTime(event.EndsAt),
		URL:       eventURLBase + event.Slug,
		Token:     token,
		BannerURL: event.BannerURL,
	}
	if data.Organizer == "" {
		data.Organizer = "Unknown"
	}
	templateName := "initial"
	if kind == domain.NotificationReminder {
		templateName = "reminder"
	}
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return &domain.SendError{Kind: kind, Err: fmt.Errorf("render %s template: %w", templateName, err)}
	}
	if err := s.mailer.Send(s.to, subject, htmlBody, textBody); err != nil {
		return &domain.SendError{Kind: kind, Err: err}
	}
	log.Printf("[EMAIL] %s notification for %q sent to %s", kind, event.Name, s.to)
	return nil
}

func formatEventTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.UTC().Format("Mon, 02 Jan 2006 15:04 MST")
}
