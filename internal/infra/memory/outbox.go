package memory

import (
	"context"
	"log"
	"sync"
)

// Message is a reset link captured by Outbox.
type Message struct {
	To   string
	Name string
	Link string
}

// Outbox is a Mailer that keeps messages in memory instead of sending them.
// It stands in for SES in development and tests.
type Outbox struct {
	mu       sync.Mutex
	messages []Message
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) SendPasswordReset(_ context.Context, toEmail, toName, link string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, Message{To: toEmail, Name: toName, Link: link})
	log.Printf("password reset for %s held in outbox", toEmail)
	return nil
}

// Messages returns a copy of everything sent so far.
func (o *Outbox) Messages() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Message, len(o.messages))
	copy(out, o.messages)
	return out
}
