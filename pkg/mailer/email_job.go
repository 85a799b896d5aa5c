package mailer

import (
	"errors"
	"strings"
)

// Message types carried in the AMQP type property.
const (
	TypeOrderPlaced        = "order.placed"
	TypeOrderStatusChanged = "order.status_changed"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Html is optional; Text is recommended as fallback.
// You can also use a template by specifying Template and Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "order_confirmation" or "order_status"
	Data     map[string]any `json:"data,omitempty"`
}

// Validate rejects jobs the worker could never deliver.
func (j *EmailJob) Validate() error {
	j.To = strings.TrimSpace(j.To)
	if j.To == "" {
		return errors.New("email job: missing recipient")
	}
	if j.Template == "" && j.Text == "" && j.HTML == "" {
		return errors.New("email job: empty body")
	}
	return nil
}
