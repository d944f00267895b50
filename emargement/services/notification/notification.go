package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/Sorolassina/mca-api/emargement/types"
	"github.com/Sorolassina/mca-api/storage"
)

const (
	Topic = "emargement.signing_link"
)

// Notifier delivers a signing link to a participant
type Notifier interface {
	Notify(ctx context.Context, email, signingURL, eventTitle string) error
}

// Request is the payload handed to the mailer through the outbox
type Request struct {
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	HTMLBody   string    `json:"html_body"`
	SigningURL string    `json:"signing_url"`
	EventTitle string    `json:"event_title"`
	ValidFor   string    `json:"valid_for"`
	CreatedAt  time.Time `json:"created_at"`
}

var bodyTemplate = template.Must(template.New("signing_link").Parse(`<p>Hello,</p>
<p>Please sign the attendance sheet for <strong>{{.EventTitle}}</strong>.</p>
<p><a href="{{.SigningURL}}">Open the signing page</a></p>
<p>This link is valid for {{.ValidFor}}.</p>
`))

// OutboxNotifier publishes notification requests to a message storage
type OutboxNotifier struct {
	storage  storage.Storage
	validFor time.Duration
	now      func() time.Time
}

func NewOutboxNotifier(stg storage.Storage, validFor time.Duration) *OutboxNotifier {
	return &OutboxNotifier{
		storage:  stg,
		validFor: validFor,
		now:      time.Now,
	}
}

func BuildRequest(email, signingURL, eventTitle string, validFor time.Duration, now time.Time) (*Request, error) {
	request := &Request{
		To:         types.NormalizeEmail(email),
		Subject:    fmt.Sprintf("Signing link for event: %s", eventTitle),
		SigningURL: signingURL,
		EventTitle: eventTitle,
		ValidFor:   fmt.Sprintf("%d minutes", int(validFor.Minutes())),
		CreatedAt:  now.UTC(),
	}

	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, request); err != nil {
		return nil, fmt.Errorf("failed to render notification body: %w", err)
	}
	request.HTMLBody = body.String()
	return request, nil
}

func (n *OutboxNotifier) Notify(ctx context.Context, email, signingURL, eventTitle string) error {
	request, err := BuildRequest(email, signingURL, eventTitle, n.validFor, n.now())
	if err != nil {
		return err
	}

	data, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := storage.Message{
		Topic:     Topic,
		Data:      data,
		CreatedAt: request.CreatedAt,
	}
	if err = n.storage.Send(ctx, message); err != nil {
		return types.WrapErr(types.KindTransient, err, "failed to send notification")
	}
	return nil
}
