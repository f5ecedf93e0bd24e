package pubsub

import (
	"context"
	"testing"

	"github.com/padtext/pad/internal/resource"
	"github.com/stretchr/testify/assert"
)

func TestBroker(t *testing.T) {
	broker := NewBroker[string](nil)

	ctx, cancel := context.WithCancel(context.Background())
	sub := broker.Subscribe(ctx)

	broker.Publish(resource.CreatedEvent, "foo")
	assert.Equal(t, resource.NewEvent(resource.CreatedEvent, "foo"), <-sub)

	broker.Publish(resource.DeletedEvent, "bar")
	assert.Equal(t, resource.NewEvent(resource.DeletedEvent, "bar"), <-sub)

	// canceling the context closes the subscription
	cancel()
	_, ok := <-sub
	assert.False(t, ok)
}

func TestBroker_FullSubscriber(t *testing.T) {
	broker := NewBroker[int](nil)
	sub := broker.Subscribe(context.Background())

	for i := range subBufferSize + 1 {
		broker.Publish(resource.UpdatedEvent, i)
	}

	// the subscriber is dropped once its buffer overflows, leaving the
	// buffered events to be drained before the channel reports closure.
	var received int
	for range sub {
		received++
	}
	assert.Equal(t, subBufferSize, received)
}
