// Package notify delivers session lifecycle messages to chat platforms.
package notify

import (
	"context"
	"errors"
	"fmt"
)

// Severity levels for outbound messages.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityError   = "error"
)

// Sidebar color hints per severity.
const (
	ColorInfo    = "#439fe0"
	ColorSuccess = "#36a64f"
	ColorError   = "#d00000"
)

// Message is a platform-agnostic notification.
type Message struct {
	Title    string
	Body     string
	Severity string
}

// Color returns the sidebar color hint for the message's severity.
func (m Message) Color() string {
	switch m.Severity {
	case SeveritySuccess:
		return ColorSuccess
	case SeverityError:
		return ColorError
	}
	return ColorInfo
}

// Notifier delivers messages to a single platform.
type Notifier interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Fanout delivers a message to every configured notifier. Delivery errors
// are collected so one failing platform does not block the others.
type Fanout struct {
	notifiers []Notifier
}

// NewFanout creates a Fanout over the given notifiers.
func NewFanout(notifiers ...Notifier) *Fanout {
	return &Fanout{notifiers: notifiers}
}

// Name implements Notifier.
func (f *Fanout) Name() string { return "fanout" }

// Send delivers the message to all notifiers, returning the joined errors
// of any that failed.
func (f *Fanout) Send(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range f.notifiers {
		if err := n.Send(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("notify: %s: %w", n.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of configured notifiers.
func (f *Fanout) Len() int { return len(f.notifiers) }
