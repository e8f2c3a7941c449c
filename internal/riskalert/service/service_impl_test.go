package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/guardian-io/guardian/internal/clock"
	"github.com/guardian-io/guardian/internal/riskalert/domain"
	"github.com/guardian-io/guardian/pkg/blob"
	"github.com/guardian-io/guardian/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	svc := New(Params{
		Store: store.Params{
			Blobs: blob.NewMemoryStore(),
			Clock: clk,
			GenID: node,
			Log:   zap.NewNop(),
		},
		Log: zap.NewNop(),
	})
	return svc, clk
}

func TestListSeedsAndOrdersBySeverity(t *testing.T) {
	svc, _ := newTestService(t)

	alerts, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 4)

	assert.Equal(t, domain.LevelHigh, alerts[0].Level)
	assert.Equal(t, domain.LevelSafe, alerts[3].Level)
	for _, alert := range alerts {
		assert.False(t, alert.Acknowledged, "seeded alerts start unacknowledged")
	}
}

func TestByLevel(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	high, err := svc.ByLevel(ctx, domain.LevelHigh)
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, "Critical supplier security breach", high[0].Title)

	_, err = svc.ByLevel(ctx, "critical")
	assert.ErrorIs(t, err, domain.ErrInvalidLevel)
}

func TestCountsByLevel(t *testing.T) {
	svc, _ := newTestService(t)

	counts, err := svc.CountsByLevel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[domain.Level]int{
		domain.LevelHigh:   1,
		domain.LevelMedium: 1,
		domain.LevelLow:    1,
		domain.LevelSafe:   1,
	}, counts)
}

func TestAcknowledgeSetsFlagOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	alerts, err := svc.List(ctx)
	require.NoError(t, err)
	target := alerts[0]

	acked, err := svc.Acknowledge(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, acked.Acknowledged)
	assert.Empty(t, acked.ResolvedAt)
	assert.Equal(t, target.Title, acked.Title)

	unacked, err := svc.Unacknowledged(ctx)
	require.NoError(t, err)
	assert.Len(t, unacked, 3)
}

func TestResolveStampsResolvedAt(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	alerts, err := svc.List(ctx)
	require.NoError(t, err)

	clk.Advance(45 * time.Minute)
	resolved, err := svc.Resolve(ctx, alerts[0].ID)
	require.NoError(t, err)
	assert.True(t, resolved.Acknowledged)
	require.NotEmpty(t, resolved.ResolvedAt)

	stamp, err := time.Parse(time.RFC3339, resolved.ResolvedAt)
	require.NoError(t, err)
	assert.True(t, stamp.Equal(clk.Now()), "resolvedAt carries the clock time")

	_, err = svc.Resolve(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateAndUpdateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateAlertRequest{
		Title:       "",
		Description: "something",
		Level:       domain.LevelLow,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)

	_, err = svc.Create(ctx, domain.CreateAlertRequest{
		Title:       "t",
		Description: "d",
		Level:       "critical",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidLevel)

	created, err := svc.Create(ctx, domain.CreateAlertRequest{
		Title:       "Port congestion",
		Description: "Backlog at origin port",
		Level:       domain.LevelMedium,
		Time:        "just now",
	})
	require.NoError(t, err)
	assert.False(t, created.Acknowledged)

	_, err = svc.Update(ctx, created.ID, map[string]json.RawMessage{
		"level": json.RawMessage(`"critical"`),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidLevel)

	_, err = svc.Update(ctx, created.ID, map[string]json.RawMessage{
		"title": json.RawMessage(`""`),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)

	stored, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Port congestion", stored.Title, "rejected patch must leave the alert unchanged")
}
