// Package notify provides the manager notification contract and a simulated
// email sender for POC deployments.
package notify

import (
	"sync"
	"time"
)

// Receipt is the delivery acknowledgment returned by a Notifier. Its content
// is opaque to the pipeline; stages only record it.
type Receipt struct {
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier delivers one alert per emitted detection event.
type Notifier interface {
	Notify(to, subject, body string) (Receipt, error)
}

// Message is one captured outbound notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// EmailSimulator implements Notifier without sending anything. It records
// every message so callers (and tests) can inspect what would have been sent.
type EmailSimulator struct {
	mu   sync.Mutex
	sent []Message
}

// NewEmailSimulator creates an EmailSimulator.
func NewEmailSimulator() *EmailSimulator {
	return &EmailSimulator{}
}

// Notify records the message and returns a SENT receipt.
func (s *EmailSimulator) Notify(to, subject, body string) (Receipt, error) {
	s.mu.Lock()
	s.sent = append(s.sent, Message{To: to, Subject: subject, Body: body})
	s.mu.Unlock()

	return Receipt{
		To:        to,
		Subject:   subject,
		Status:    "SENT",
		Timestamp: time.Now().UTC(),
	}, nil
}

// Sent returns a copy of all recorded messages.
func (s *EmailSimulator) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.sent))
	copy(out, s.sent)
	return out
}
