// Package billing wires the billing domain into application services: the
// dual-path invoice facade and the transactional plan migration.
package billing

import (
	"context"
	"time"

	"github.com/formpulse/backend/internal/domain/billing"
	"github.com/formpulse/backend/internal/domain/identity"
	"github.com/formpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceProvider resolves an invoice for a client and reference month.
// Two interchangeable implementations exist: live computation for the open
// month, and snapshot retrieval for closed months. The facade selects
// between them on calendar-month equality alone.
type InvoiceProvider interface {
	Invoice(ctx context.Context, clientID uuid.UUID, referenceMonth time.Time) (*billing.Invoice, error)
}

// Clock abstracts "now" so month-equality branching is testable.
type Clock func() time.Time

// BillingFacade returns a client's invoice for any reference month, choosing
// the live or snapshot path. It performs no computation itself.
type BillingFacade struct {
	live     InvoiceProvider
	snapshot InvoiceProvider
	clock    Clock
	logger   *zap.Logger
}

// NewBillingFacade creates a new BillingFacade. A nil clock defaults to
// time.Now.
func NewBillingFacade(live, snapshot InvoiceProvider, clock Clock, logger *zap.Logger) *BillingFacade {
	if clock == nil {
		clock = time.Now
	}
	return &BillingFacade{
		live:     live,
		snapshot: snapshot,
		clock:    clock,
		logger:   logger,
	}
}

// GetInvoice resolves the invoice for (client, reference month).
//
// The current calendar month is open and always computed from live data;
// any other month is served from its immutable snapshot, or NotFound when
// that month was never closed. The comparison is month-granular, never
// day-level.
func (f *BillingFacade) GetInvoice(ctx context.Context, clientID uuid.UUID, referenceMonth time.Time) (*billing.Invoice, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}

	if billing.SameMonth(f.clock(), referenceMonth) {
		f.logger.Debug("Resolving invoice from live usage",
			zap.String("client_id", clientID.String()),
			zap.Time("reference_month", billing.MonthOf(referenceMonth)))
		return f.live.Invoice(ctx, clientID, referenceMonth)
	}

	f.logger.Debug("Resolving invoice from billing snapshot",
		zap.String("client_id", clientID.String()),
		zap.Time("reference_month", billing.MonthOf(referenceMonth)))
	return f.snapshot.Invoice(ctx, clientID, referenceMonth)
}

// LiveInvoiceProvider computes the open month's invoice from current usage.
// Nothing is cached: every call re-reads plan and usage state so the figure
// never bills stale data.
type LiveInvoiceProvider struct {
	clientRepo     identity.ClientRepository
	planRepo       billing.PlanRepository
	formSource     billing.FormUsageSource
	responseSource billing.ResponseUsageSource
	aiReportSource billing.AiReportUsageSource
	resolver       *billing.UsageWindowResolver
	calculator     *billing.Calculator
	logger         *zap.Logger
}

// NewLiveInvoiceProvider creates a new LiveInvoiceProvider
func NewLiveInvoiceProvider(
	clientRepo identity.ClientRepository,
	planRepo billing.PlanRepository,
	formSource billing.FormUsageSource,
	responseSource billing.ResponseUsageSource,
	aiReportSource billing.AiReportUsageSource,
	logger *zap.Logger,
) *LiveInvoiceProvider {
	return &LiveInvoiceProvider{
		clientRepo:     clientRepo,
		planRepo:       planRepo,
		formSource:     formSource,
		responseSource: responseSource,
		aiReportSource: aiReportSource,
		resolver:       billing.NewUsageWindowResolver(),
		calculator:     billing.NewCalculator(),
		logger:         logger,
	}
}

// Invoice computes the month-to-date invoice from live usage data.
func (p *LiveInvoiceProvider) Invoice(ctx context.Context, clientID uuid.UUID, referenceMonth time.Time) (*billing.Invoice, error) {
	client, err := p.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("CLIENT_NOT_FOUND", "Client not found")
		}
		return nil, shared.WrapDomainError("CLIENT_LOOKUP_FAILED", "Failed to load client", err)
	}

	plan, err := p.planRepo.FindByID(ctx, client.PlanID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("PLAN_NOT_FOUND", "Client has no resolvable plan")
		}
		return nil, shared.WrapDomainError("PLAN_LOOKUP_FAILED", "Failed to load plan", err)
	}

	usage, err := p.resolveUsage(ctx, clientID, referenceMonth)
	if err != nil {
		return nil, err
	}

	invoice := p.calculator.Compute(clientID, plan, usage, referenceMonth)

	p.logger.Debug("Live invoice computed",
		zap.String("client_id", clientID.String()),
		zap.Int64("billable_forms", usage.BillableForms),
		zap.Int64("cumulative_responses", usage.CumulativeResponses),
		zap.Int64("monthly_ai_reports", usage.MonthlyAiReports),
		zap.String("total", invoice.InvoiceTotalSoFar.String()))

	return &invoice, nil
}

// resolveUsage applies the three window rules against the usage sources.
func (p *LiveInvoiceProvider) resolveUsage(ctx context.Context, clientID uuid.UUID, referenceMonth time.Time) (billing.UsageCounts, error) {
	var usage billing.UsageCounts

	forms, err := p.formSource.FormsByClient(ctx, clientID)
	if err != nil {
		return usage, shared.WrapDomainError("USAGE_LOOKUP_FAILED", "Failed to load forms", err)
	}
	usage.BillableForms = int64(len(p.resolver.BillableForms(forms, referenceMonth)))

	responses, err := p.responseSource.CountByClientBefore(ctx, clientID, p.resolver.ResponseCutoff(referenceMonth))
	if err != nil {
		return usage, shared.WrapDomainError("USAGE_LOOKUP_FAILED", "Failed to count responses", err)
	}
	usage.CumulativeResponses = responses

	start, end := p.resolver.AiReportWindow(referenceMonth)
	aiReports, err := p.aiReportSource.CountByClientInRange(ctx, clientID, start, end)
	if err != nil {
		return usage, shared.WrapDomainError("USAGE_LOOKUP_FAILED", "Failed to count AI reports", err)
	}
	usage.MonthlyAiReports = aiReports

	return usage, nil
}

// SnapshotInvoiceProvider serves closed months from the immutable
// billing_summaries store.
type SnapshotInvoiceProvider struct {
	summaryRepo billing.BillingSummaryRepository
	logger      *zap.Logger
}

// NewSnapshotInvoiceProvider creates a new SnapshotInvoiceProvider
func NewSnapshotInvoiceProvider(summaryRepo billing.BillingSummaryRepository, logger *zap.Logger) *SnapshotInvoiceProvider {
	return &SnapshotInvoiceProvider{
		summaryRepo: summaryRepo,
		logger:      logger,
	}
}

// Invoice returns the stored snapshot verbatim, or NotFound when the month
// was never closed or predates the client.
func (p *SnapshotInvoiceProvider) Invoice(ctx context.Context, clientID uuid.UUID, referenceMonth time.Time) (*billing.Invoice, error) {
	summary, err := p.summaryRepo.FindByClientAndMonth(ctx, clientID, referenceMonth)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("SNAPSHOT_NOT_FOUND", "No billing snapshot for the requested month")
		}
		return nil, shared.WrapDomainError("SNAPSHOT_LOOKUP_FAILED", "Failed to load billing snapshot", err)
	}

	invoice := summary.ToInvoice()
	return &invoice, nil
}

var (
	_ InvoiceProvider = (*LiveInvoiceProvider)(nil)
	_ InvoiceProvider = (*SnapshotInvoiceProvider)(nil)
)
