package graph

import (
	"testing"
	"time"

	"github.com/guardian-io/guardian/internal/config"
	"github.com/guardian-io/guardian/internal/graph/layout"
	"github.com/guardian-io/guardian/internal/graph/live"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(Params{
		Config: config.Config{
			LayoutFrameInterval: time.Millisecond,
			CanvasWidth:         800,
			CanvasHeight:        400,
		},
		Hub: live.NewHub(),
		Log: zap.NewNop(),
	})
	t.Cleanup(m.Shutdown)
	return m
}

func TestTopologyMatchesSeed(t *testing.T) {
	m := newTestManager(t)

	topo := m.Topology()
	require.Len(t, topo.Nodes, 8)
	require.Len(t, topo.Links, 9)
	assert.Equal(t, "center", topo.Nodes[0].ID)
	assert.Equal(t, 5.0, topo.Links[0].Value)
}

func TestStartSessionPublishesFrames(t *testing.T) {
	m := newTestManager(t)

	sess, err := m.StartSession(StartSessionRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, 800.0, sess.Width)
	assert.Equal(t, 400.0, sess.Height)

	sub, backlog, err := m.Subscribe(sess.ID)
	require.NoError(t, err)
	defer sub.Close()

	if len(backlog) == 0 {
		select {
		case frame := <-sub.Frames():
			assert.Len(t, frame.Nodes, 8)
		case <-time.After(2 * time.Second):
			t.Fatal("no frame published")
		}
	} else {
		assert.Len(t, backlog[0].Nodes, 8)
	}

	require.NoError(t, m.StopSession(sess.ID))
}

func TestStartSessionWithCustomTopology(t *testing.T) {
	m := newTestManager(t)

	sess, err := m.StartSession(StartSessionRequest{
		Width:  200,
		Height: 200,
		Nodes:  []layout.Node{{ID: "x"}, {ID: "y"}},
		Links:  []layout.Link{{Source: "x", Target: "y", Value: 1}},
	})
	require.NoError(t, err)

	frame, err := m.Snapshot(sess.ID)
	require.NoError(t, err)
	assert.Len(t, frame.Nodes, 2)
}

func TestStartSessionRejectsBrokenTopology(t *testing.T) {
	m := newTestManager(t)

	_, err := m.StartSession(StartSessionRequest{
		Nodes: []layout.Node{{ID: "x"}},
		Links: []layout.Link{{Source: "x", Target: "ghost"}},
	})
	assert.ErrorIs(t, err, ErrInvalidTopology)
}

func TestRestartCancelsPriorRun(t *testing.T) {
	m := newTestManager(t)

	first, err := m.StartSession(StartSessionRequest{SessionID: "fixed"})
	require.NoError(t, err)

	sub, _, err := m.Subscribe(first.ID)
	require.NoError(t, err)

	second, err := m.StartSession(StartSessionRequest{SessionID: "fixed"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// the prior run's stream was closed when it was replaced
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, open := <-sub.Frames():
			if !open {
				return
			}
		case <-deadline:
			t.Fatal("prior stream never closed")
		}
	}
}

func TestDragAndReleaseRoute(t *testing.T) {
	m := newTestManager(t)

	sess, err := m.StartSession(StartSessionRequest{})
	require.NoError(t, err)

	require.NoError(t, m.Drag(sess.ID, "center", 10, 10))
	require.NoError(t, m.Release(sess.ID, "center"))

	assert.ErrorIs(t, m.Drag(sess.ID, "ghost", 0, 0), layout.ErrUnknownNode)
	assert.ErrorIs(t, m.Drag("missing", "center", 0, 0), ErrSessionNotFound)
}

func TestStopSessionTwice(t *testing.T) {
	m := newTestManager(t)

	sess, err := m.StartSession(StartSessionRequest{})
	require.NoError(t, err)

	require.NoError(t, m.StopSession(sess.ID))
	assert.ErrorIs(t, m.StopSession(sess.ID), ErrSessionNotFound)

	_, err = m.Snapshot(sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestShutdownStopsEverything(t *testing.T) {
	m := newTestManager(t)

	first, err := m.StartSession(StartSessionRequest{})
	require.NoError(t, err)
	second, err := m.StartSession(StartSessionRequest{})
	require.NoError(t, err)

	m.Shutdown()

	_, err = m.Snapshot(first.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Snapshot(second.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
