package live

import (
	"testing"

	"github.com/guardian-io/guardian/internal/graph/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(tick int) layout.Frame {
	return layout.Frame{Tick: tick, Phase: layout.PhaseRunning}
}

func TestSubscribeReceivesPublishedFrames(t *testing.T) {
	hub := NewHub()

	sub, backlog, err := hub.Subscribe("session-1")
	require.NoError(t, err)
	defer sub.Close()
	assert.Empty(t, backlog)

	hub.Publish("session-1", frame(1))
	hub.Publish("session-1", frame(2))

	assert.Equal(t, 1, (<-sub.Frames()).Tick)
	assert.Equal(t, 2, (<-sub.Frames()).Tick)
}

func TestLateSubscriberGetsBacklog(t *testing.T) {
	hub := NewHub()

	for tick := 1; tick <= 5; tick++ {
		hub.Publish("session-1", frame(tick))
	}

	sub, backlog, err := hub.Subscribe("session-1")
	require.NoError(t, err)
	defer sub.Close()

	require.Len(t, backlog, 5)
	assert.Equal(t, 1, backlog[0].Tick)
	assert.Equal(t, 5, backlog[4].Tick)
}

func TestBacklogIsBounded(t *testing.T) {
	hub := NewHub()

	for tick := 1; tick <= DefaultBacklog+10; tick++ {
		hub.Publish("session-1", frame(tick))
	}

	_, backlog, err := hub.Subscribe("session-1")
	require.NoError(t, err)
	require.Len(t, backlog, DefaultBacklog)
	assert.Equal(t, 11, backlog[0].Tick, "oldest frames fall off the ring")
}

func TestStreamsAreIsolatedPerSession(t *testing.T) {
	hub := NewHub()

	subA, _, err := hub.Subscribe("a")
	require.NoError(t, err)
	defer subA.Close()
	subB, _, err := hub.Subscribe("b")
	require.NoError(t, err)
	defer subB.Close()

	hub.Publish("a", frame(7))

	assert.Equal(t, 7, (<-subA.Frames()).Tick)
	select {
	case got := <-subB.Frames():
		t.Fatalf("session b received frame %d", got.Tick)
	default:
	}
}

func TestSlowSubscriberDropsFramesWithoutBlocking(t *testing.T) {
	hub := NewHub()

	sub, _, err := hub.Subscribe("session-1")
	require.NoError(t, err)
	defer sub.Close()

	// overflow the subscriber buffer; Publish must not block
	for tick := 1; tick <= DefaultSubscriberBuffer*2; tick++ {
		hub.Publish("session-1", frame(tick))
	}

	received := 0
	for {
		select {
		case <-sub.Frames():
			received++
			continue
		default:
		}
		break
	}
	assert.Equal(t, DefaultSubscriberBuffer, received)
}

func TestCloseEndsSubscriberChannels(t *testing.T) {
	hub := NewHub()

	sub, _, err := hub.Subscribe("session-1")
	require.NoError(t, err)

	hub.Close("session-1")

	_, open := <-sub.Frames()
	assert.False(t, open)

	_, _, err = hub.Subscribe("session-1")
	require.NoError(t, err, "a fresh stream may be opened after close")
}

func TestSubscriptionCloseIsIdempotent(t *testing.T) {
	hub := NewHub()

	sub, _, err := hub.Subscribe("session-1")
	require.NoError(t, err)

	sub.Close()
	sub.Close()

	hub.Publish("session-1", frame(1))
}

func TestSubscribeRejectsBlankSession(t *testing.T) {
	hub := NewHub()
	_, _, err := hub.Subscribe("   ")
	assert.ErrorIs(t, err, ErrInvalidSession)
}
