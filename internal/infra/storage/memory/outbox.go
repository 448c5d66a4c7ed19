package memory

import (
	"context"
	"sync"

	appoutbox "autorent/internal/app/outbox"
)

// Outbox buffers event records in memory. Flush hands them to an optional
// publisher callback; without one the records are simply dropped, which is
// fine for tests and the memory storage mode.
type Outbox struct {
	mu      sync.Mutex
	records []appoutbox.EventRecord
	Publish func(ctx context.Context, record appoutbox.EventRecord) error
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	pending := o.records
	o.records = nil
	publish := o.Publish
	o.mu.Unlock()

	if publish == nil {
		return nil
	}
	for _, rec := range pending {
		if err := publish(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// Pending returns a snapshot of buffered records, for tests.
func (o *Outbox) Pending() []appoutbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]appoutbox.EventRecord, len(o.records))
	copy(out, o.records)
	return out
}

var _ appoutbox.Outbox = (*Outbox)(nil)
