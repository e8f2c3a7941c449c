package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/guardian-io/guardian/internal/clock"
	"github.com/guardian-io/guardian/internal/supplier/domain"
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

func TestListSeedsEmptyCollection(t *testing.T) {
	svc, _ := newTestService(t)

	suppliers, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, suppliers, 4)
	assert.Equal(t, "1", suppliers[0].ID)
	assert.Equal(t, "TechSolutions Inc.", suppliers[0].Name)
	assert.Equal(t, 82, suppliers[0].RiskScore)
}

func TestListDoesNotReseedNonEmptyCollection(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)

	created, err := svc.Create(ctx, domain.CreateSupplierRequest{
		Name:             "Acme",
		Country:          "US",
		Category:         domain.CategoryHardware,
		RiskScore:        40,
		ComplianceStatus: domain.CompliancePending,
		TrustLevel:       domain.TrustVerified,
	})
	require.NoError(t, err)

	suppliers, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, suppliers, 5)

	found := false
	for _, supplier := range suppliers {
		if supplier.ID == created.ID {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDeletingAllSuppliersTriggersReseed(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	suppliers, err := svc.List(ctx)
	require.NoError(t, err)
	for _, supplier := range suppliers {
		require.NoError(t, svc.Delete(ctx, supplier.ID))
	}

	// an empty collection is indistinguishable from a never-seeded one
	suppliers, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, suppliers, 4)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	base := domain.CreateSupplierRequest{
		Name:             "Acme",
		Country:          "US",
		Category:         domain.CategoryHardware,
		RiskScore:        40,
		ComplianceStatus: domain.CompliancePending,
		TrustLevel:       domain.TrustVerified,
	}

	cases := []struct {
		name    string
		mutate  func(*domain.CreateSupplierRequest)
		wantErr error
	}{
		{"blank name", func(r *domain.CreateSupplierRequest) { r.Name = "  " }, domain.ErrInvalidName},
		{"blank country", func(r *domain.CreateSupplierRequest) { r.Country = "" }, domain.ErrInvalidCountry},
		{"bad category", func(r *domain.CreateSupplierRequest) { r.Category = "Pottery" }, domain.ErrInvalidCategory},
		{"risk below range", func(r *domain.CreateSupplierRequest) { r.RiskScore = -1 }, domain.ErrInvalidRiskScore},
		{"risk above range", func(r *domain.CreateSupplierRequest) { r.RiskScore = 101 }, domain.ErrInvalidRiskScore},
		{"bad status", func(r *domain.CreateSupplierRequest) { r.ComplianceStatus = "unknown" }, domain.ErrInvalidComplianceStatus},
		{"bad trust", func(r *domain.CreateSupplierRequest) { r.TrustLevel = "bronze" }, domain.ErrInvalidTrustLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUpdateMergesAndValidates(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateSupplierRequest{
		Name:             "Acme",
		Country:          "US",
		Category:         domain.CategoryHardware,
		RiskScore:        40,
		ComplianceStatus: domain.CompliancePending,
		TrustLevel:       domain.TrustVerified,
	})
	require.NoError(t, err)

	clk.Advance(time.Minute)
	updated, err := svc.Update(ctx, created.ID, map[string]json.RawMessage{
		"riskScore": json.RawMessage(`85`),
	})
	require.NoError(t, err)
	assert.Equal(t, 85, updated.RiskScore)
	assert.Equal(t, domain.CompliancePending, updated.ComplianceStatus, "untouched fields survive the merge")
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	_, err = svc.Update(ctx, created.ID, map[string]json.RawMessage{
		"riskScore": json.RawMessage(`400`),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRiskScore)

	_, err = svc.Update(ctx, "missing", map[string]json.RawMessage{
		"riskScore": json.RawMessage(`10`),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRejectedUpdateLeavesRecordUnchanged(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateSupplierRequest{
		Name:             "Acme",
		Country:          "US",
		Category:         domain.CategoryHardware,
		RiskScore:        40,
		ComplianceStatus: domain.CompliancePending,
		TrustLevel:       domain.TrustVerified,
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, map[string]json.RawMessage{
		"name": json.RawMessage(`""`),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	stored, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", stored.Name)
	assert.Equal(t, created.UpdatedAt, stored.UpdatedAt)
}

func TestGetByIDAfterDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateSupplierRequest{
		Name:             "Acme",
		Country:          "US",
		Category:         domain.CategoryHardware,
		RiskScore:        40,
		ComplianceStatus: domain.CompliancePending,
		TrustLevel:       domain.TrustVerified,
	})
	require.NoError(t, err)

	fetched, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTopByRiskOrdersDescending(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	top, err := svc.TopByRisk(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "TechSolutions Inc.", top[0].Name)
	assert.Equal(t, "PrecisionParts", top[1].Name)
	assert.GreaterOrEqual(t, top[0].RiskScore, top[1].RiskScore)

	all, err := svc.TopByRisk(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, all, 4, "n beyond the collection size returns everything")
}
