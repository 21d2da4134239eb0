// Package events carries change notifications between the sync layer and
// anything rendering or re-reading storefront data.
package events

import (
	"sync"

	"github.com/maktabat-alamal/storefront/internal/models"
)

type Topic string

const (
	// TopicDocument fires after every document refresh or successful write
	// and carries the full document.
	TopicDocument Topic = "document.updated"

	// Entity topics carry no payload; subscribers re-read the relevant
	// accessor. Because the document is replaced wholesale, every entity
	// topic fires on each document update even when that collection did
	// not change.
	TopicProducts   Topic = "products.updated"
	TopicOrders     Topic = "orders.updated"
	TopicCategories Topic = "categories.updated"
	TopicCart       Topic = "cart.updated"
)

type Event struct {
	Topic    Topic
	Document *models.Document // set only for TopicDocument
}

// Bus is a process-wide publish/subscribe hub. Publish never blocks: a
// subscriber that cannot keep up loses events rather than stalling writers.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[Topic]map[int]chan Event
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Topic]map[int]chan Event)}
}

// Subscribe registers a listener for one topic and returns the channel plus
// a cancel func. Cancel must be called or the subscription leaks.
func (b *Bus) Subscribe(topic Topic, buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	id := b.next
	b.next++
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]chan Event)
	}
	b.subs[topic][id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if sub, ok := b.subs[topic][id]; ok {
			delete(b.subs[topic], id)
			close(sub)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber of its topic.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[e.Topic] {
		select {
		case ch <- e:
		default:
		}
	}
}
