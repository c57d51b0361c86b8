package property

import (
	"context"

	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// PropertyService handles property, unit and late-fee policy operations
type PropertyService struct {
	repo property.Repository
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(repo property.Repository) *PropertyService {
	return &PropertyService{repo: repo}
}

// Create creates a property together with its unconfigured late-fee
// policy. Both rows land in one transaction, so a property can never
// exist without a policy row.
func (s *PropertyService) Create(ctx context.Context, subscriptionID uuid.UUID, req CreatePropertyRequest) (*PropertyResponse, error) {
	p, err := property.NewProperty(subscriptionID, req.Name, req.Address, req.Portfolio)
	if err != nil {
		return nil, err
	}
	pol := property.NewDefaultLateFeePolicy(subscriptionID, p.ID)

	if err := s.repo.CreateWithPolicy(ctx, p, pol); err != nil {
		return nil, err
	}

	response := ToPropertyResponse(p)
	return &response, nil
}

// GetByID retrieves a property by ID
func (s *PropertyService) GetByID(ctx context.Context, subscriptionID, propertyID uuid.UUID) (*PropertyResponse, error) {
	p, err := s.repo.FindByID(ctx, subscriptionID, propertyID)
	if err != nil {
		return nil, err
	}

	response := ToPropertyResponse(p)
	return &response, nil
}

// List retrieves a page of properties
func (s *PropertyService) List(ctx context.Context, subscriptionID uuid.UUID, filter shared.Filter) ([]PropertyResponse, int64, error) {
	properties, total, err := s.repo.List(ctx, subscriptionID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PropertyResponse, len(properties))
	for i := range properties {
		responses[i] = ToPropertyResponse(&properties[i])
	}
	return responses, total, nil
}

// Update applies a partial update to a property
func (s *PropertyService) Update(ctx context.Context, subscriptionID, propertyID uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	p, err := s.repo.FindByID(ctx, subscriptionID, propertyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewValidationError("Property name cannot be empty")
		}
		p.Name = *req.Name
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Portfolio != nil {
		p.Portfolio = *req.Portfolio
	}
	p.IncrementVersion()

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPropertyResponse(p)
	return &response, nil
}

// Delete removes a property; its policy row cascades
func (s *PropertyService) Delete(ctx context.Context, subscriptionID, propertyID uuid.UUID) error {
	return s.repo.Delete(ctx, subscriptionID, propertyID)
}

// CreateUnit creates a unit under a property
func (s *PropertyService) CreateUnit(ctx context.Context, subscriptionID, propertyID uuid.UUID, req CreateUnitRequest) (*UnitResponse, error) {
	// The property must exist within the subscription
	if _, err := s.repo.FindByID(ctx, subscriptionID, propertyID); err != nil {
		return nil, err
	}

	u, err := property.NewUnit(subscriptionID, propertyID, req.Name)
	if err != nil {
		return nil, err
	}
	u.Bedrooms = req.Bedrooms
	u.Bathrooms = req.Bathrooms

	if err := s.repo.SaveUnit(ctx, u); err != nil {
		return nil, err
	}

	response := ToUnitResponse(u)
	return &response, nil
}

// GetUnit retrieves a unit by ID
func (s *PropertyService) GetUnit(ctx context.Context, subscriptionID, unitID uuid.UUID) (*UnitResponse, error) {
	u, err := s.repo.FindUnitByID(ctx, subscriptionID, unitID)
	if err != nil {
		return nil, err
	}

	response := ToUnitResponse(u)
	return &response, nil
}

// ListUnits retrieves the units of a property
func (s *PropertyService) ListUnits(ctx context.Context, subscriptionID, propertyID uuid.UUID) ([]UnitResponse, error) {
	units, err := s.repo.ListUnits(ctx, subscriptionID, propertyID)
	if err != nil {
		return nil, err
	}

	responses := make([]UnitResponse, len(units))
	for i := range units {
		responses[i] = ToUnitResponse(&units[i])
	}
	return responses, nil
}

// AddPhoto attaches a photo record to a property. Marking a second
// photo as cover surfaces a constraint violation.
func (s *PropertyService) AddPhoto(ctx context.Context, subscriptionID, propertyID uuid.UUID, req AddPhotoRequest) (*PhotoResponse, error) {
	if _, err := s.repo.FindByID(ctx, subscriptionID, propertyID); err != nil {
		return nil, err
	}

	photo, err := property.NewPhoto(subscriptionID, propertyID, req.URL, req.Caption, req.IsCover)
	if err != nil {
		return nil, err
	}

	if err := s.repo.AddPhoto(ctx, photo); err != nil {
		return nil, err
	}

	response := ToPhotoResponse(photo)
	return &response, nil
}

// ListPhotos retrieves the photos of a property, cover first
func (s *PropertyService) ListPhotos(ctx context.Context, subscriptionID, propertyID uuid.UUID) ([]PhotoResponse, error) {
	photos, err := s.repo.ListPhotos(ctx, subscriptionID, propertyID)
	if err != nil {
		return nil, err
	}

	responses := make([]PhotoResponse, len(photos))
	for i := range photos {
		responses[i] = ToPhotoResponse(&photos[i])
	}
	return responses, nil
}

// SetCoverPhoto makes the given photo its property's cover
func (s *PropertyService) SetCoverPhoto(ctx context.Context, subscriptionID, photoID uuid.UUID) error {
	return s.repo.SetCoverPhoto(ctx, subscriptionID, photoID)
}

// DeletePhoto removes a photo record
func (s *PropertyService) DeletePhoto(ctx context.Context, subscriptionID, photoID uuid.UUID) error {
	return s.repo.DeletePhoto(ctx, subscriptionID, photoID)
}

// GetPolicy retrieves a property's late-fee policy
func (s *PropertyService) GetPolicy(ctx context.Context, subscriptionID, propertyID uuid.UUID) (*PolicyResponse, error) {
	pol, err := s.repo.FindPolicyByProperty(ctx, subscriptionID, propertyID)
	if err != nil {
		return nil, err
	}

	response := ToPolicyResponse(pol)
	return &response, nil
}

// UpdatePolicy configures a property's late-fee policy
func (s *PropertyService) UpdatePolicy(ctx context.Context, subscriptionID, propertyID uuid.UUID, req UpdatePolicyRequest) (*PolicyResponse, error) {
	pol, err := s.repo.FindPolicyByProperty(ctx, subscriptionID, propertyID)
	if err != nil {
		return nil, err
	}

	update := property.PolicyUpdate{
		BaseAmountFee:          req.BaseAmountFee,
		ChargeDailyLateFees:    req.ChargeDailyLateFees,
		DailyAmountPerMonthMax: req.DailyAmountPerMonthMax,
		GracePeriod:            req.GracePeriod,
		StartDate:              req.StartDate,
		EndDate:                req.EndDate,
	}
	if req.LateFeeType != nil {
		t := property.LateFeeType(*req.LateFeeType)
		update.LateFeeType = &t
	}
	if req.EligibleCharges != nil {
		e := property.EligibleCharges(*req.EligibleCharges)
		update.EligibleCharges = &e
	}
	if req.GracePeriodType != nil {
		g := property.GracePeriodType(*req.GracePeriodType)
		update.GracePeriodType = &g
	}

	if err := pol.Configure(update); err != nil {
		return nil, err
	}

	if err := s.repo.SavePolicy(ctx, pol); err != nil {
		return nil, err
	}

	response := ToPolicyResponse(pol)
	return &response, nil
}
