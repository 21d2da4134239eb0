// Package notifier approximates real-time propagation of remote changes by
// polling: there is no push channel on the bin API.
package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/maktabat-alamal/storefront/internal/events"
	"github.com/maktabat-alamal/storefront/internal/models"
	"github.com/maktabat-alamal/storefront/pkg/logger"
)

const DefaultInterval = 10 * time.Second

// Source is the slice of the cache manager the notifier drives.
type Source interface {
	Invalidate()
	Get(ctx context.Context) *models.Document
}

type Publisher interface {
	Publish(e events.Event)
}

// Notifier re-fetches the document at a fixed cadence and broadcasts the
// fresh copy. Stop must be called when no subscribers remain, otherwise one
// remote read per interval leaks forever.
type Notifier struct {
	source   Source
	bus      Publisher
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(source Source, bus Publisher, interval time.Duration) *Notifier {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Notifier{source: source, bus: bus, interval: interval}
}

// Start launches the polling goroutine. Calling Start twice without an
// intervening Stop is a no-op.
func (n *Notifier) Start(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	n.cancel = cancel
	n.done = make(chan struct{})

	go func() {
		defer close(n.done)
		ticker := time.NewTicker(n.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n.tick(ctx)
			}
		}
	}()
	logger.Infof("notifier: polling every %s", n.interval)
}

// Stop cancels polling and waits for the loop to exit. Safe to call more
// than once.
func (n *Notifier) Stop() {
	n.mu.Lock()
	cancel, done := n.cancel, n.done
	n.cancel, n.done = nil, nil
	n.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	logger.Infof("notifier: stopped")
}

func (n *Notifier) tick(ctx context.Context) {
	n.source.Invalidate()
	doc := n.source.Get(ctx)
	n.bus.Publish(events.Event{Topic: events.TopicDocument, Document: doc})
}
