package notify

import (
	"context"
	"errors"
)

// Composite fans one notification out to several notifiers. Every notifier
// is attempted; errors are joined.
type Composite struct {
	notifiers []Notifier
}

// NewComposite creates a fan-out notifier.
func NewComposite(notifiers ...Notifier) *Composite {
	return &Composite{notifiers: notifiers}
}

// Notify delivers to every configured notifier.
func (c *Composite) Notify(ctx context.Context, title, body string) error {
	var errs []error
	for _, n := range c.notifiers {
		if err := n.Notify(ctx, title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
