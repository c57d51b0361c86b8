package property

import (
	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// LateFeeType selects how the base late fee is computed.
type LateFeeType string

const (
	LateFeeTypeFlat       LateFeeType = "FLAT"
	LateFeeTypePercentage LateFeeType = "PERCENTAGE"
)

// IsValid checks if the late fee type is valid
func (t LateFeeType) IsValid() bool {
	return t == LateFeeTypeFlat || t == LateFeeTypePercentage
}

// EligibleCharges selects the monetary scope the late-fee rate applies to.
type EligibleCharges string

const (
	EligibleChargesEvery         EligibleCharges = "EVERY_CHARGE"
	EligibleChargesAllRecurring  EligibleCharges = "ALL_RECURRING_CHARGES"
	EligibleChargesRecurringRent EligibleCharges = "ONLY_RECURRING_RENT"
)

// IsValid checks if the eligible charges mode is valid
func (e EligibleCharges) IsValid() bool {
	switch e {
	case EligibleChargesEvery, EligibleChargesAllRecurring, EligibleChargesRecurringRent:
		return true
	}
	return false
}

// GracePeriodType selects how the grace period is interpreted.
type GracePeriodType string

const (
	GracePeriodNumberOfDays    GracePeriodType = "NUMBER_OF_DAYS"
	GracePeriodTillDateOfMonth GracePeriodType = "TILL_DATE_OF_MONTH"
	GracePeriodNone            GracePeriodType = "NO_GRACE_PERIOD"
)

// IsValid checks if the grace period type is valid
func (g GracePeriodType) IsValid() bool {
	switch g {
	case GracePeriodNumberOfDays, GracePeriodTillDateOfMonth, GracePeriodNone:
		return true
	}
	return false
}

// LateFeePolicy is the per-property late-fee configuration. A policy is
// auto-created unconfigured (nil LateFeeType / EligibleCharges) together
// with its property and configured later through admin CRUD.
type LateFeePolicy struct {
	shared.SubscriptionAggregateRoot
	PropertyID             uuid.UUID
	LateFeeType            *LateFeeType
	BaseAmountFee          valueobject.Money
	EligibleCharges        *EligibleCharges
	ChargeDailyLateFees    bool
	DailyAmountPerMonthMax *valueobject.Money
	GracePeriodType        *GracePeriodType
	GracePeriod            int
	StartDate              *valueobject.Date
	EndDate                *valueobject.Date
}

// NewDefaultLateFeePolicy returns the unconfigured policy materialized on
// property create.
func NewDefaultLateFeePolicy(subscriptionID, propertyID uuid.UUID) *LateFeePolicy {
	return &LateFeePolicy{
		SubscriptionAggregateRoot: shared.NewSubscriptionAggregateRoot(subscriptionID),
		PropertyID:                propertyID,
	}
}

// IsConfigured reports whether the policy can produce a fee: both the fee
// type and the eligible-charges mode must be set.
func (p *LateFeePolicy) IsConfigured() bool {
	return p != nil && p.LateFeeType != nil && p.EligibleCharges != nil
}

// InEffectOn reports whether the reference date falls inside the policy's
// optional validity window. An unset bound is open-ended.
func (p *LateFeePolicy) InEffectOn(today valueobject.Date) bool {
	if p.StartDate != nil && today.Before(*p.StartDate) {
		return false
	}
	if p.EndDate != nil && today.After(*p.EndDate) {
		return false
	}
	return true
}

// PolicyUpdate carries the configurable fields for an admin update.
type PolicyUpdate struct {
	LateFeeType            *LateFeeType
	BaseAmountFee          valueobject.Money
	EligibleCharges        *EligibleCharges
	ChargeDailyLateFees    bool
	DailyAmountPerMonthMax *valueobject.Money
	GracePeriodType        *GracePeriodType
	GracePeriod            int
	StartDate              *valueobject.Date
	EndDate                *valueobject.Date
}

// Configure applies an admin update after validating the enum fields.
func (p *LateFeePolicy) Configure(u PolicyUpdate) error {
	if u.LateFeeType != nil && !u.LateFeeType.IsValid() {
		return shared.NewValidationError("Invalid late fee type")
	}
	if u.EligibleCharges != nil && !u.EligibleCharges.IsValid() {
		return shared.NewValidationError("Invalid eligible charges mode")
	}
	if u.GracePeriodType != nil && !u.GracePeriodType.IsValid() {
		return shared.NewValidationError("Invalid grace period type")
	}
	if u.BaseAmountFee.IsNegative() {
		return shared.NewValidationError("Base fee amount cannot be negative")
	}
	if u.GracePeriod < 0 {
		return shared.NewValidationError("Grace period cannot be negative")
	}
	if u.StartDate != nil && u.EndDate != nil && u.EndDate.Before(*u.StartDate) {
		return shared.NewValidationError("Policy end date cannot precede start date")
	}

	p.LateFeeType = u.LateFeeType
	p.BaseAmountFee = u.BaseAmountFee
	p.EligibleCharges = u.EligibleCharges
	p.ChargeDailyLateFees = u.ChargeDailyLateFees
	p.DailyAmountPerMonthMax = u.DailyAmountPerMonthMax
	p.GracePeriodType = u.GracePeriodType
	p.GracePeriod = u.GracePeriod
	p.StartDate = u.StartDate
	p.EndDate = u.EndDate
	p.IncrementVersion()
	return nil
}
