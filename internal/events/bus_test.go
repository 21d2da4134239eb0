package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maktabat-alamal/storefront/internal/models"
)

func TestPublishReachesAllTopicSubscribers(t *testing.T) {
	b := NewBus()
	a, cancelA := b.Subscribe(TopicProducts, 1)
	defer cancelA()
	c, cancelC := b.Subscribe(TopicProducts, 1)
	defer cancelC()

	b.Publish(Event{Topic: TopicProducts})

	require.Len(t, a, 1)
	require.Len(t, c, 1)
}

func TestTopicsAreIsolated(t *testing.T) {
	b := NewBus()
	orders, cancel := b.Subscribe(TopicOrders, 1)
	defer cancel()

	b.Publish(Event{Topic: TopicProducts})
	assert.Empty(t, orders)
}

func TestDocumentEventsCarryThePayload(t *testing.T) {
	b := NewBus()
	ch, cancel := b.Subscribe(TopicDocument, 1)
	defer cancel()

	doc := &models.Document{Products: []models.Product{{ID: 1}}}
	b.Publish(Event{Topic: TopicDocument, Document: doc})

	e := <-ch
	require.NotNil(t, e.Document)
	assert.Equal(t, 1, e.Document.Products[0].ID)
}

func TestSlowSubscriberLosesEventsInsteadOfBlocking(t *testing.T) {
	b := NewBus()
	ch, cancel := b.Subscribe(TopicProducts, 1)
	defer cancel()

	// second publish must not block even though nobody drains the channel
	b.Publish(Event{Topic: TopicProducts})
	b.Publish(Event{Topic: TopicProducts})

	assert.Len(t, ch, 1)
}

func TestCancelClosesChannel(t *testing.T) {
	b := NewBus()
	ch, cancel := b.Subscribe(TopicCart, 1)
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// cancelling twice must not panic
	cancel()

	// publishing after cancel reaches nobody
	b.Publish(Event{Topic: TopicCart})
}

func TestPublishWithoutSubscribersIsANoOp(t *testing.T) {
	b := NewBus()
	b.Publish(Event{Topic: TopicCategories})
}
