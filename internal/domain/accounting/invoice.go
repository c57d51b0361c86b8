package accounting

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusUnpaid          InvoiceStatus = "UNPAID"
	InvoiceStatusPaidNotVerified InvoiceStatus = "PAID_NOT_VERIFIED"
	InvoiceStatusPaid            InvoiceStatus = "PAID"
	InvoiceStatusPartiallyPaid   InvoiceStatus = "PARTIALLY_PAID"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPaidNotVerified, InvoiceStatusPaid, InvoiceStatusPartiallyPaid:
		return true
	}
	return false
}

// Invoice is a rent invoice for one interval of a lease. The persisted
// columns here are inputs; payable amounts and late fees are derived on
// read and never stored. PayedAt and PayedLateFee keep their historical
// wire spelling.
type Invoice struct {
	shared.SubscriptionAggregateRoot
	LeaseID           uuid.UUID
	PropertyID        uuid.UUID
	UnitID            uuid.UUID
	IntervalStartDate valueobject.Date
	IntervalEndDate   valueobject.Date
	DueDate           valueobject.Date
	RentAmount        valueobject.Money
	ArrearsAmount     valueobject.Money
	ArrearOfID        *uuid.UUID
	PayedAt           *time.Time
	PayedLateFee      valueobject.Money
	TotalPaidAmount   valueobject.Money
	Status            InvoiceStatus
	Charges           []Charge
}

// NewInvoice creates an unpaid invoice for a lease interval
func NewInvoice(
	subscriptionID, leaseID, propertyID, unitID uuid.UUID,
	intervalStart, intervalEnd, dueDate valueobject.Date,
	rentAmount valueobject.Money,
) (*Invoice, error) {
	if leaseID == uuid.Nil {
		return nil, shared.NewValidationError("Invoice must belong to a lease")
	}
	if intervalStart.IsZero() || intervalEnd.IsZero() {
		return nil, shared.NewValidationError("Invoice interval is required")
	}
	if intervalEnd.Before(intervalStart) {
		return nil, shared.NewValidationError("Invoice interval end cannot precede its start")
	}
	if rentAmount.IsNegative() {
		return nil, shared.NewValidationError("Rent amount cannot be negative")
	}
	return &Invoice{
		SubscriptionAggregateRoot: shared.NewSubscriptionAggregateRoot(subscriptionID),
		LeaseID:                   leaseID,
		PropertyID:                propertyID,
		UnitID:                    unitID,
		IntervalStartDate:         intervalStart,
		IntervalEndDate:           intervalEnd,
		DueDate:                   dueDate,
		RentAmount:                rentAmount,
		Status:                    InvoiceStatusUnpaid,
	}, nil
}

// IsPaid reports whether the invoice has been settled in full.
func (i *Invoice) IsPaid() bool {
	return i.PayedAt != nil
}

// ApplyPayment records a payment against the invoice and moves its
// status. The caller must hold a row lock on the invoice so concurrent
// postings serialize on TotalPaidAmount.
func (i *Invoice) ApplyPayment(p *Payment, payable valueobject.Money, now time.Time) error {
	if !p.Amount.IsPositive() {
		return shared.NewValidationError("Payment amount must be positive")
	}
	i.TotalPaidAmount = i.TotalPaidAmount.Add(p.Amount)
	if i.TotalPaidAmount.GreaterThan(payable) || i.TotalPaidAmount.Equal(payable) {
		i.Status = InvoiceStatusPaidNotVerified
		i.PayedAt = &now
	} else {
		i.Status = InvoiceStatusPartiallyPaid
	}
	i.IncrementVersion()
	return nil
}

// FreezeLateFee records the fee collected by a settling payment.
// Derivation subtracts PayedLateFee on every later read and stops
// accruing the fee once the invoice is paid, so the collected fee comes
// back out of TotalPaidAmount twice over: once as the recorded fee,
// once for the accrual that settlement retired. The derived payable
// then drops by exactly the payment amount and a full settlement lands
// on zero.
func (i *Invoice) FreezeLateFee(fee valueobject.Money) {
	i.PayedLateFee = i.PayedLateFee.Add(fee).RoundBank()
	i.TotalPaidAmount = i.TotalPaidAmount.Sub(fee.MulInt(2))
}

// MarkVerified confirms a fully paid invoice after manual review.
func (i *Invoice) MarkVerified() error {
	if i.Status != InvoiceStatusPaidNotVerified {
		return shared.NewDomainError("STATE_CONFLICT", "Only an unverified paid invoice can be verified")
	}
	i.Status = InvoiceStatusPaid
	i.IncrementVersion()
	return nil
}

// Payment is a settlement applied to an invoice
type Payment struct {
	shared.SubscriptionAggregateRoot
	InvoiceID     uuid.UUID
	Amount        valueobject.Money
	PaymentDate   valueobject.Date
	PaymentMethod string
}

// NewPayment creates a payment against an invoice
func NewPayment(subscriptionID, invoiceID uuid.UUID, amount valueobject.Money, paymentDate valueobject.Date, method string) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewValidationError("Payment must target an invoice")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Payment amount must be positive")
	}
	return &Payment{
		SubscriptionAggregateRoot: shared.NewSubscriptionAggregateRoot(subscriptionID),
		InvoiceID:                 invoiceID,
		Amount:                    amount,
		PaymentDate:               paymentDate,
		PaymentMethod:             method,
	}, nil
}
