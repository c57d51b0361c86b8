package accounting

import (
	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// ChargeType distinguishes one-time charges from recurring ones
type ChargeType string

const (
	ChargeTypeOneTime   ChargeType = "ONE_TIME"
	ChargeTypeRecurring ChargeType = "RECURRING"
)

// IsValid checks if the charge type is valid
func (t ChargeType) IsValid() bool {
	return t == ChargeTypeOneTime || t == ChargeTypeRecurring
}

// ChargeStatus marks a per-invoice posting of a charge. A recurring
// charge with a nil status is a template; its monthly occurrence carries
// a status and points back at the template via ParentChargeID.
type ChargeStatus string

const (
	ChargeStatusPending ChargeStatus = "PENDING"
	ChargeStatusPosted  ChargeStatus = "POSTED"
)

// Charge is a billable line attached to an invoice. ParentChargeID forms
// a self-reference of depth at most one: an occurrence points at its
// recurring template, and a template never has a parent.
type Charge struct {
	shared.SubscriptionAggregateRoot
	InvoiceID      uuid.UUID
	PropertyID     uuid.UUID
	Title          string
	Amount         valueobject.Money
	ChargeType     ChargeType
	Status         *ChargeStatus
	ParentChargeID *uuid.UUID
}

// NewCharge creates a charge line on an invoice
func NewCharge(subscriptionID, invoiceID uuid.UUID, title string, amount valueobject.Money, chargeType ChargeType) (*Charge, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewValidationError("Charge must belong to an invoice")
	}
	if !chargeType.IsValid() {
		return nil, shared.NewValidationError("Invalid charge type")
	}
	if amount.IsNegative() {
		return nil, shared.NewValidationError("Charge amount cannot be negative")
	}
	return &Charge{
		SubscriptionAggregateRoot: shared.NewSubscriptionAggregateRoot(subscriptionID),
		InvoiceID:                 invoiceID,
		Title:                     title,
		Amount:                    amount,
		ChargeType:                chargeType,
	}, nil
}

// NewChargeOccurrence creates the per-invoice posting of a recurring
// template. The parent must itself be a template; occurrences never
// chain deeper than one level.
func NewChargeOccurrence(template *Charge, invoiceID uuid.UUID, status ChargeStatus) (*Charge, error) {
	if template.ChargeType != ChargeTypeRecurring {
		return nil, shared.NewValidationError("Only a recurring charge can have occurrences")
	}
	if template.ParentChargeID != nil {
		return nil, shared.NewValidationError("An occurrence cannot spawn further occurrences")
	}
	occ, err := NewCharge(template.SubscriptionID, invoiceID, template.Title, template.Amount, ChargeTypeRecurring)
	if err != nil {
		return nil, err
	}
	occ.PropertyID = template.PropertyID
	occ.Status = &status
	occ.ParentChargeID = &template.ID
	return occ, nil
}

// IsTemplate reports whether this is a recurring template rather than a
// posted line.
func (c *Charge) IsTemplate() bool {
	return c.ChargeType == ChargeTypeRecurring && c.Status == nil
}

// IsRecurring reports whether the charge participates in recurring sums.
func (c *Charge) IsRecurring() bool {
	return c.ChargeType == ChargeTypeRecurring
}
