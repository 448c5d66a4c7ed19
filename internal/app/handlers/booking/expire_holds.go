package booking

import (
	"context"
	"log/slog"
	"time"

	"autorent/internal/app/outbox"
	"autorent/internal/app/uow"
)

const expireHoldsKey = "reservation.expire_holds"

// ExpireHoldsCommand releases pending holds older than the hold TTL. It is
// dispatched from a background ticker, not from the HTTP surface.
type ExpireHoldsCommand struct {
	Cutoff time.Time
}

func (c ExpireHoldsCommand) Key() string { return expireHoldsKey }

type ExpireHoldsResult struct {
	Expired int `json:"expired"`
}

type ExpireHoldsHandler struct {
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	HoldTTL time.Duration
	Clock   func() time.Time
	Logger  *slog.Logger
}

func (h *ExpireHoldsHandler) Handle(ctx context.Context, cmd ExpireHoldsCommand) (ExpireHoldsResult, error) {
	unit, err := uow.Require(ctx)
	if err != nil {
		return ExpireHoldsResult{}, err
	}
	now := h.now()
	cutoff := cmd.Cutoff
	if cutoff.IsZero() {
		ttl := h.HoldTTL
		if ttl <= 0 {
			ttl = 30 * time.Minute
		}
		cutoff = now.Add(-ttl)
	}

	stale, err := unit.Reservations().PendingCreatedBefore(ctx, cutoff)
	if err != nil {
		return ExpireHoldsResult{}, err
	}

	expired := 0
	for _, r := range stale {
		if err := r.Expire(now); err != nil {
			// Someone confirmed or cancelled it between the listing and now.
			continue
		}
		if err := unit.Reservations().Save(ctx, r); err != nil {
			return ExpireHoldsResult{}, err
		}
		if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, r.PendingEvents()); err != nil {
			return ExpireHoldsResult{}, err
		}
		r.ClearEvents()
		expired++
	}
	if expired > 0 {
		h.logger().Info("expired stale holds", "count", expired, "cutoff", cutoff)
	}
	return ExpireHoldsResult{Expired: expired}, nil
}

func (h *ExpireHoldsHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now().UTC()
}

func (h *ExpireHoldsHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
