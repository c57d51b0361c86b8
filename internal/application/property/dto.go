package property

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

// CreatePropertyRequest represents a request to create a new property
type CreatePropertyRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=255"`
	Address   string `json:"address" binding:"max=500"`
	Portfolio string `json:"portfolio" binding:"max=100"`
}

// UpdatePropertyRequest represents a request to update a property
type UpdatePropertyRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=255"`
	Address   *string `json:"address" binding:"omitempty,max=500"`
	Portfolio *string `json:"portfolio" binding:"omitempty,max=100"`
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Portfolio string    `json:"portfolio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPropertyResponse converts a domain Property to its response DTO
func ToPropertyResponse(p *property.Property) PropertyResponse {
	return PropertyResponse{
		ID:        p.ID,
		Slug:      p.Slug(),
		Name:      p.Name,
		Address:   p.Address,
		Portfolio: p.Portfolio,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// CreateUnitRequest represents a request to create a unit under a property
type CreateUnitRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=255"`
	Bedrooms  int    `json:"bedrooms" binding:"min=0"`
	Bathrooms int    `json:"bathrooms" binding:"min=0"`
}

// UnitResponse represents a unit in API responses
type UnitResponse struct {
	ID         uuid.UUID `json:"id"`
	Slug       string    `json:"slug"`
	PropertyID uuid.UUID `json:"property_id"`
	Name       string    `json:"name"`
	Bedrooms   int       `json:"bedrooms"`
	Bathrooms  int       `json:"bathrooms"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToUnitResponse converts a domain Unit to its response DTO
func ToUnitResponse(u *property.Unit) UnitResponse {
	return UnitResponse{
		ID:         u.ID,
		Slug:       u.Slug(),
		PropertyID: u.PropertyID,
		Name:       u.Name,
		Bedrooms:   u.Bedrooms,
		Bathrooms:  u.Bathrooms,
		CreatedAt:  u.CreatedAt,
	}
}

// AddPhotoRequest represents a request to attach a photo to a property
type AddPhotoRequest struct {
	URL     string `json:"url" binding:"required,url"`
	Caption string `json:"caption" binding:"max=255"`
	IsCover bool   `json:"is_cover"`
}

// PhotoResponse represents a property photo in API responses
type PhotoResponse struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	URL        string    `json:"url"`
	Caption    string    `json:"caption"`
	IsCover    bool      `json:"is_cover"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToPhotoResponse converts a domain Photo to its response DTO
func ToPhotoResponse(p *property.Photo) PhotoResponse {
	return PhotoResponse{
		ID:         p.ID,
		PropertyID: p.ParentPropertyID,
		URL:        p.URL,
		Caption:    p.Caption,
		IsCover:    p.IsCover,
		CreatedAt:  p.CreatedAt,
	}
}

// UpdatePolicyRequest carries the configurable late-fee policy fields.
// A null late_fee_type or eligible_charges leaves the policy
// unconfigured and no fee is ever assessed.
type UpdatePolicyRequest struct {
	LateFeeType            *string            `json:"late_fee_type" binding:"omitempty,oneof=FLAT PERCENTAGE"`
	BaseAmountFee          valueobject.Money  `json:"base_amount_fee"`
	EligibleCharges        *string            `json:"eligible_charges" binding:"omitempty,oneof=EVERY_CHARGE ALL_RECURRING_CHARGES ONLY_RECURRING_RENT"`
	ChargeDailyLateFees    bool               `json:"charge_daily_late_fees"`
	DailyAmountPerMonthMax *valueobject.Money `json:"daily_amount_per_month_max"`
	GracePeriodType        *string            `json:"grace_period_type" binding:"omitempty,oneof=NUMBER_OF_DAYS TILL_DATE_OF_MONTH NO_GRACE_PERIOD"`
	GracePeriod            int                `json:"grace_period" binding:"min=0"`
	StartDate              *valueobject.Date  `json:"start_date"`
	EndDate                *valueobject.Date  `json:"end_date"`
}

// PolicyResponse represents a late-fee policy in API responses
type PolicyResponse struct {
	ID                     uuid.UUID          `json:"id"`
	PropertyID             uuid.UUID          `json:"property_id"`
	IsConfigured           bool               `json:"is_configured"`
	LateFeeType            *string            `json:"late_fee_type"`
	BaseAmountFee          valueobject.Money  `json:"base_amount_fee"`
	EligibleCharges        *string            `json:"eligible_charges"`
	ChargeDailyLateFees    bool               `json:"charge_daily_late_fees"`
	DailyAmountPerMonthMax *valueobject.Money `json:"daily_amount_per_month_max"`
	GracePeriodType        *string            `json:"grace_period_type"`
	GracePeriod            int                `json:"grace_period"`
	StartDate              *valueobject.Date  `json:"start_date"`
	EndDate                *valueobject.Date  `json:"end_date"`
}

// ToPolicyResponse converts a domain LateFeePolicy to its response DTO
func ToPolicyResponse(pol *property.LateFeePolicy) PolicyResponse {
	resp := PolicyResponse{
		ID:                     pol.ID,
		PropertyID:             pol.PropertyID,
		IsConfigured:           pol.IsConfigured(),
		BaseAmountFee:          pol.BaseAmountFee,
		ChargeDailyLateFees:    pol.ChargeDailyLateFees,
		DailyAmountPerMonthMax: pol.DailyAmountPerMonthMax,
		GracePeriod:            pol.GracePeriod,
		StartDate:              pol.StartDate,
		EndDate:                pol.EndDate,
	}
	if pol.LateFeeType != nil {
		s := string(*pol.LateFeeType)
		resp.LateFeeType = &s
	}
	if pol.EligibleCharges != nil {
		s := string(*pol.EligibleCharges)
		resp.EligibleCharges = &s
	}
	if pol.GracePeriodType != nil {
		s := string(*pol.GracePeriodType)
		resp.GracePeriodType = &s
	}
	return resp
}
