// ABOUTME: Tests for the zero-payload change signal.
// ABOUTME: Validates delivery counts, unsubscription, overflow drops, and concurrency safety.

package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignal_EmitDeliversToSubscriber(t *testing.T) {
	sig := NewSignal()
	ch, _ := sig.Subscribe(context.Background())

	sig.Emit()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a notification")
	}
}

func TestSignal_OneDeliveryPerEmission(t *testing.T) {
	sig := NewSignal()
	ch, _ := sig.Subscribe(context.Background())

	sig.Emit()
	sig.Emit()
	sig.Emit()

	// Buffered channel preserves one entry per emission up to its capacity.
	assert.Len(t, ch, 3)
}

func TestSignal_EmitWithNoSubscribers(t *testing.T) {
	sig := NewSignal()

	// Must not panic or block
	sig.Emit()
}

func TestSignal_Unsubscribe(t *testing.T) {
	sig := NewSignal()
	ch, subID := sig.Subscribe(context.Background())
	require.Equal(t, 1, sig.SubscriberCount())

	sig.Unsubscribe(subID)
	assert.Equal(t, 0, sig.SubscriberCount())

	sig.Emit()
	assert.Len(t, ch, 0)
}

func TestSignal_UnsubscribeUnknownID(t *testing.T) {
	sig := NewSignal()

	// Unknown IDs are ignored
	sig.Unsubscribe("no-such-subscription")
}

func TestSignal_ContextCancellationCleansUp(t *testing.T) {
	sig := NewSignal()
	ctx, cancel := context.WithCancel(context.Background())
	sig.Subscribe(ctx)
	require.Equal(t, 1, sig.SubscriberCount())

	cancel()

	assert.Eventually(t, func() bool {
		return sig.SubscriberCount() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestSignal_OverflowDropsForFullSubscriber(t *testing.T) {
	sig := NewSignal()
	ch, _ := sig.Subscribe(context.Background())

	// Fill the buffer and then some; emitter must never block.
	for i := 0; i < signalBufferSize*2; i++ {
		sig.Emit()
	}

	assert.Len(t, ch, signalBufferSize)
}

func TestSignal_MultipleSubscribers(t *testing.T) {
	sig := NewSignal()
	ch1, _ := sig.Subscribe(context.Background())
	ch2, _ := sig.Subscribe(context.Background())

	sig.Emit()

	assert.Len(t, ch1, 1)
	assert.Len(t, ch2, 1)
}

func TestSignal_ConcurrentEmitAndSubscribe(t *testing.T) {
	sig := NewSignal()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sig.Emit()
		}()
		go func() {
			defer wg.Done()
			_, subID := sig.Subscribe(context.Background())
			sig.Unsubscribe(subID)
		}()
	}

	wg.Wait()
}
