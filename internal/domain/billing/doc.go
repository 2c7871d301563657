// Package billing provides domain models for usage-based invoice aggregation
// in a multi-tenant forms/feedback SaaS application.
//
// This package implements the billing bounded context, which is responsible for:
//   - Describing subscription plans and their per-item pricing rules
//   - Resolving which forms, responses and AI reports count toward a
//     reference month (the usage window)
//   - Computing a month-to-date invoice from live usage and pricing rules
//   - Retrieving closed-month invoices from immutable billing snapshots
//
// Key types:
//   - Plan / PricingRule: reference pricing data, changed only out of band
//   - UsageWindowResolver: month-membership rules for billable usage
//   - Calculator: pure overage and charge arithmetic on exact decimals
//   - BillingSummary: an immutable snapshot of a closed month's invoice
//
// The billing domain integrates with:
//   - Identity domain: for the client (tenant) and its plan pointer
//   - Audit domain: plan migrations write through the audit trail
//   - Forms/feedback/AI-report stores: as read-only usage sources
package billing
