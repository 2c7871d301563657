package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appbilling "github.com/formpulse/backend/internal/application/billing"
	"github.com/formpulse/backend/internal/domain/billing"
	"github.com/formpulse/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubInvoiceProvider struct {
	invoice *billing.Invoice
	err     error
	calls   int
}

func (s *stubInvoiceProvider) Invoice(ctx context.Context, clientID uuid.UUID, referenceMonth time.Time) (*billing.Invoice, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.invoice, nil
}

type stubMigrator struct {
	migrated bool
	err      error
}

func (s *stubMigrator) MigratePlan(ctx context.Context, clientID, targetPlanID uuid.UUID) (bool, error) {
	return s.migrated, s.err
}

type stubPlanRepo struct {
	plans []*billing.Plan
	err   error
}

func (s *stubPlanRepo) FindByID(ctx context.Context, id uuid.UUID) (*billing.Plan, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *stubPlanRepo) FindAll(ctx context.Context) ([]*billing.Plan, error) {
	return s.plans, s.err
}

func newBillingRouter(live, snapshot appbilling.InvoiceProvider, migrator appbilling.PlanMigrator, planRepo billing.PlanRepository, now time.Time) *gin.Engine {
	logger := zap.NewNop()
	facade := appbilling.NewBillingFacade(live, snapshot, func() time.Time { return now }, logger)
	migration := appbilling.NewPlanMigrationService(migrator, logger)
	plans := appbilling.NewPlanService(planRepo, logger)

	h := NewBillingHandler(facade, migration, plans, logger)
	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine
}

func TestBillingHandler_GetInvoice(t *testing.T) {
	clientID := uuid.New()
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	invoice := &billing.Invoice{
		ClientID:          clientID,
		PlanName:          "Pro",
		ReferenceMonth:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		InvoiceTotalSoFar: decimal.NewFromInt(120),
		PlanBasePrice:     decimal.NewFromInt(100),
	}

	t.Run("current month is served live", func(t *testing.T) {
		live := &stubInvoiceProvider{invoice: invoice}
		snapshot := &stubInvoiceProvider{}
		engine := newBillingRouter(live, snapshot, &stubMigrator{}, &stubPlanRepo{}, now)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/billing/clients/"+clientID.String()+"/invoice?month=2026-03", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, live.calls)
		assert.Zero(t, snapshot.calls)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				PlanName          string `json:"plan_name"`
				ReferenceMonth    string `json:"reference_month"`
				InvoiceTotalSoFar string `json:"invoice_total_so_far"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Pro", resp.Data.PlanName)
		assert.Equal(t, "2026-03", resp.Data.ReferenceMonth)
		assert.Equal(t, "120.00", resp.Data.InvoiceTotalSoFar)
	})

	t.Run("past month is served from snapshot", func(t *testing.T) {
		live := &stubInvoiceProvider{}
		snapshot := &stubInvoiceProvider{invoice: invoice}
		engine := newBillingRouter(live, snapshot, &stubMigrator{}, &stubPlanRepo{}, now)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/billing/clients/"+clientID.String()+"/invoice?month=2026-01", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, live.calls)
		assert.Equal(t, 1, snapshot.calls)
	})

	t.Run("missing snapshot maps to 404", func(t *testing.T) {
		snapshot := &stubInvoiceProvider{err: shared.NewDomainError("SNAPSHOT_NOT_FOUND", "No billing snapshot for the requested month")}
		engine := newBillingRouter(&stubInvoiceProvider{}, snapshot, &stubMigrator{}, &stubPlanRepo{}, now)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/billing/clients/"+clientID.String()+"/invoice?month=2025-12", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
	})

	t.Run("malformed month is rejected", func(t *testing.T) {
		engine := newBillingRouter(&stubInvoiceProvider{}, &stubInvoiceProvider{}, &stubMigrator{}, &stubPlanRepo{}, now)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/billing/clients/"+clientID.String()+"/invoice?month=March", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed client ID is rejected", func(t *testing.T) {
		engine := newBillingRouter(&stubInvoiceProvider{}, &stubInvoiceProvider{}, &stubMigrator{}, &stubPlanRepo{}, now)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/billing/clients/not-a-uuid/invoice", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBillingHandler_MigratePlan(t *testing.T) {
	clientID := uuid.New()
	now := time.Now().UTC()

	post := func(engine *gin.Engine, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/clients/"+clientID.String()+"/plan-migration", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)
		return w
	}

	t.Run("successful migration", func(t *testing.T) {
		engine := newBillingRouter(&stubInvoiceProvider{}, &stubInvoiceProvider{}, &stubMigrator{migrated: true}, &stubPlanRepo{}, now)

		w := post(engine, `{"new_plan_id":"`+uuid.NewString()+`"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"migrated":true`)
	})

	t.Run("already on target plan reports migrated false", func(t *testing.T) {
		engine := newBillingRouter(&stubInvoiceProvider{}, &stubInvoiceProvider{}, &stubMigrator{migrated: false}, &stubPlanRepo{}, now)

		w := post(engine, `{"new_plan_id":"`+uuid.NewString()+`"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"migrated":false`)
	})

	t.Run("missing body is rejected", func(t *testing.T) {
		engine := newBillingRouter(&stubInvoiceProvider{}, &stubInvoiceProvider{}, &stubMigrator{}, &stubPlanRepo{}, now)

		w := post(engine, `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown client maps to 404", func(t *testing.T) {
		migrator := &stubMigrator{err: shared.NewDomainError("CLIENT_NOT_FOUND", "Client not found")}
		engine := newBillingRouter(&stubInvoiceProvider{}, &stubInvoiceProvider{}, migrator, &stubPlanRepo{}, now)

		w := post(engine, `{"new_plan_id":"`+uuid.NewString()+`"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBillingHandler_Plans(t *testing.T) {
	now := time.Now().UTC()
	plan := &billing.Plan{
		Name:      "Pro",
		BasePrice: decimal.NewFromInt(100),
		Type:      billing.PlanTypeFlat,
	}
	plan.ID = uuid.New()

	t.Run("lists the catalog", func(t *testing.T) {
		engine := newBillingRouter(&stubInvoiceProvider{}, &stubInvoiceProvider{}, &stubMigrator{}, &stubPlanRepo{plans: []*billing.Plan{plan}}, now)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/billing/plans", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Pro"`)
		assert.Contains(t, w.Body.String(), `"base_price":"100.00"`)
	})

	t.Run("unknown plan maps to 404", func(t *testing.T) {
		engine := newBillingRouter(&stubInvoiceProvider{}, &stubInvoiceProvider{}, &stubMigrator{}, &stubPlanRepo{}, now)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/billing/plans/"+uuid.NewString(), nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
