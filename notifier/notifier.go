package notifier

import (
	"context"
	"errors"
)

// Notifier delivers a plain text message somewhere a human will read it.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Multi delivers to every channel in order and joins their errors.
// A failing channel does not stop the remaining ones.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, text string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
