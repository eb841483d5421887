// Package domain defines the tenant domain types: billing plan tiers and
// plan lifecycle statuses as closed enumerations. Raw strings from the
// boundary must pass through the Parse functions so invalid values are
// rejected before reaching business logic.
package domain

import "raally_backend/platform/apperr"

// PlanTier is a tenant's billing plan tier.
type PlanTier string

const (
	PlanFree       PlanTier = "free"
	PlanGrowth     PlanTier = "growth"
	PlanEnterprise PlanTier = "enterprise"
)

// ParsePlanTier converts a raw string into a PlanTier.
func ParsePlanTier(raw string) (PlanTier, error) {
	switch PlanTier(raw) {
	case PlanFree, PlanGrowth, PlanEnterprise:
		return PlanTier(raw), nil
	default:
		return "", apperr.Validation("unknown plan tier: " + raw)
	}
}

// IsPaid reports whether the tier carries a paid subscription.
func (p PlanTier) IsPaid() bool {
	return p != PlanFree && p != ""
}

// String returns the wire representation of the tier.
func (p PlanTier) String() string { return string(p) }

// PlanStatus is the lifecycle status of a tenant's plan.
type PlanStatus string

const (
	PlanStatusActive PlanStatus = "active"
	// PlanStatusCancelAtPeriodEnd marks a paid plan winding down at the end
	// of the current billing period. Plan-owner protection rules do not
	// apply during this transition.
	PlanStatusCancelAtPeriodEnd PlanStatus = "cancel_at_period_end"
	PlanStatusError             PlanStatus = "error"
)

// ParsePlanStatus converts a raw string into a PlanStatus.
func ParsePlanStatus(raw string) (PlanStatus, error) {
	switch PlanStatus(raw) {
	case PlanStatusActive, PlanStatusCancelAtPeriodEnd, PlanStatusError:
		return PlanStatus(raw), nil
	default:
		return "", apperr.Validation("unknown plan status: " + raw)
	}
}

// String returns the wire representation of the status.
func (s PlanStatus) String() string { return string(s) }
