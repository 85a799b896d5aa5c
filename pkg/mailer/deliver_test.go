package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailtpl "github.com/oksasatya/gadget-store-api/pkg/mailer/templates"
)

type sent struct {
	to, subject, text, html string
}

type fakeSender struct {
	got []sent
	err error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	f.got = append(f.got, sent{to, subject, text, html})
	return f.err
}

func TestDeliver_RendersTemplate(t *testing.T) {
	s := &fakeSender{}
	job := EmailJob{
		To:       " juan@example.com ",
		Template: mailtpl.OrderStatus,
		Data:     map[string]any{"OrderID": "o1", "Status": "processing", "Name": "Juan"},
	}

	require.NoError(t, Deliver(context.Background(), s, job))
	require.Len(t, s.got, 1)
	assert.Equal(t, "juan@example.com", s.got[0].to)
	assert.Equal(t, "Your order o1 is now processing", s.got[0].subject)
	assert.Contains(t, s.got[0].text, "Processing")
	assert.NotEmpty(t, s.got[0].html)
}

func TestDeliver_PlainBody(t *testing.T) {
	s := &fakeSender{}
	job := EmailJob{To: "a@b.c", Subject: "hi", Text: "body"}

	require.NoError(t, Deliver(context.Background(), s, job))
	assert.Equal(t, sent{"a@b.c", "hi", "body", ""}, s.got[0])
}

func TestDeliver_Undeliverable(t *testing.T) {
	cases := map[string]EmailJob{
		"no recipient":     {Text: "x"},
		"no body":          {To: "a@b.c"},
		"unknown template": {To: "a@b.c", Template: "missing"},
	}
	for name, job := range cases {
		t.Run(name, func(t *testing.T) {
			s := &fakeSender{}
			err := Deliver(context.Background(), s, job)
			assert.ErrorIs(t, err, ErrUndeliverable)
			assert.Empty(t, s.got)
		})
	}
}

func TestDeliver_SenderErrorIsRetryable(t *testing.T) {
	s := &fakeSender{err: errors.New("mailgun down")}
	err := Deliver(context.Background(), s, EmailJob{To: "a@b.c", Text: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUndeliverable)
}
