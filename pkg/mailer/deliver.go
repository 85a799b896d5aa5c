package mailer

import (
	"context"
	"errors"
	"fmt"

	mailtpl "github.com/oksasatya/gadget-store-api/pkg/mailer/templates"
)

// Sender is satisfied by *Mailgun.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// ErrUndeliverable marks jobs that will never succeed and must not be requeued.
var ErrUndeliverable = errors.New("undeliverable email job")

// Deliver renders job, if it names a template, and hands it to s.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	if err := job.Validate(); err != nil {
		return errors.Join(ErrUndeliverable, err)
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		var err error
		subject, text, html, err = mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return errors.Join(ErrUndeliverable, fmt.Errorf("render %s: %w", job.Template, err))
		}
	}
	return s.Send(ctx, job.To, subject, text, html)
}
