package poller

import (
	"context"
	"log/slog"
	"reflect"
	"time"

	"homework-notifier/config"
	"homework-notifier/model"
	"homework-notifier/notifier"
	"homework-notifier/practicum"
)

type Fetcher interface {
	Fetch(ctx context.Context, fromDate int64) (any, error)
}

type Result int

const (
	// Unchanged means the homeworks list equals the last seen one.
	Unchanged Result = iota
	// Notified means the list changed and a message was delivered.
	Notified
	// Cleared means the list changed to empty; there is nothing to render.
	Cleared
	// Failed means a stage returned an error, see Outcome.Err.
	Failed
)

// Outcome is what one poll cycle produced.
type Outcome struct {
	Result  Result
	Message string
	Err     error
}

// Poller owns the last seen homeworks and the from_date timestamp.
// It is not safe for concurrent use; Run drives it from a single goroutine.
type Poller struct {
	fetcher         Fetcher
	notifier        notifier.Notifier
	retryPeriod     time.Duration
	advanceFromDate bool

	timestamp int64
	lastSeen  []model.Homework
}

func New(cfg *config.Config, fetcher Fetcher, n notifier.Notifier, start time.Time) *Poller {
	return &Poller{
		fetcher:         fetcher,
		notifier:        n,
		retryPeriod:     cfg.RetryPeriod,
		advanceFromDate: cfg.AdvanceFromDate,
		timestamp:       start.Unix(),
		lastSeen:        []model.Homework{},
	}
}

// Timestamp returns the from_date used by the next fetch.
func (p *Poller) Timestamp() int64 { return p.timestamp }

// Cycle runs fetch, validate, compare and notify once.
func (p *Poller) Cycle(ctx context.Context) Outcome {
	payload, err := p.fetcher.Fetch(ctx, p.timestamp)
	if err != nil {
		return Outcome{Result: Failed, Err: err}
	}
	resp, err := practicum.Validate(payload)
	if err != nil {
		return Outcome{Result: Failed, Err: err}
	}
	if p.advanceFromDate && resp.CurrentDate > 0 {
		p.timestamp = resp.CurrentDate
	}

	if sameHomeworks(resp.Homeworks, p.lastSeen) {
		slog.Debug("no changes in homework status")
		return Outcome{Result: Unchanged}
	}
	if len(resp.Homeworks) == 0 {
		p.lastSeen = resp.Homeworks
		slog.Debug("homeworks list is empty now")
		return Outcome{Result: Cleared}
	}

	// Only the first record is reported, however many changed.
	message, err := model.RenderStatus(resp.Homeworks[0])
	if err != nil {
		slog.Error("can't render homework status", slog.String("error", err.Error()))
		return Outcome{Result: Failed, Err: err}
	}

	p.lastSeen = resp.Homeworks
	if err := p.notifier.Notify(ctx, message); err != nil {
		slog.Error("failed to send message", slog.String("error", err.Error()))
		return Outcome{
			Result:  Failed,
			Message: message,
			Err:     model.NewError(model.KindDeliveryFailure, "failed to send message", err),
		}
	}
	slog.Debug("message sent", slog.String("message", message))

	return Outcome{Result: Notified, Message: message}
}

// Run polls until ctx is cancelled. It returns an error only for failures
// that must stop the process.
func (p *Poller) Run(ctx context.Context) error {
	for {
		o := p.Cycle(ctx)
		if ctx.Err() != nil {
			slog.Info("poller stopped")
			return nil
		}
		if err := p.handle(o); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			slog.Info("poller stopped")
			return nil
		case <-time.After(p.retryPeriod):
		}
	}
}

func (p *Poller) handle(o Outcome) error {
	switch o.Result {
	case Unchanged, Cleared:
		return nil
	case Notified:
		slog.Info("homework status change delivered")
		return nil
	case Failed:
	}

	kind := model.KindOf(o.Err)
	switch kind {
	case model.KindMissingCredential:
		return o.Err
	case model.KindTransportFailure,
		model.KindNoAnswer,
		model.KindMalformedResponse,
		model.KindUnrecognizedStatus,
		model.KindDeliveryFailure,
		model.KindUnknown:
		slog.Error("program failure", slog.String("kind", kind.String()),
			slog.String("error", o.Err.Error()))
	}

	return nil
}

func sameHomeworks(a, b []model.Homework) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
