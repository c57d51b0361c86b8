package communication

import (
	"github.com/google/uuid"

	"github.com/rentdesk/backend/internal/domain/shared"
)

// SelectionMode encodes how an announcement's audience was chosen:
// all or selective properties crossed with all or selective units.
type SelectionMode string

const (
	SelectionAllPropertiesAllUnits             SelectionMode = "APAU"
	SelectionSelectivePropertiesAllUnits       SelectionMode = "SPAU"
	SelectionSelectivePropertiesSelectiveUnits SelectionMode = "SPSU"
	SelectionAllPropertiesSelectiveUnits       SelectionMode = "APSU"
)

// IsValid checks if the selection mode is valid
func (m SelectionMode) IsValid() bool {
	switch m {
	case SelectionAllPropertiesAllUnits, SelectionSelectivePropertiesAllUnits,
		SelectionSelectivePropertiesSelectiveUnits, SelectionAllPropertiesSelectiveUnits:
		return true
	}
	return false
}

// Announcement is a notice broadcast to a set of properties and units.
// The concrete audience is expanded from the selection mode at create
// time and stored, so later reads never re-resolve it.
type Announcement struct {
	shared.SubscriptionAggregateRoot
	Title       string
	Body        string
	Selection   SelectionMode
	PropertyIDs []uuid.UUID
	UnitIDs     []uuid.UUID
}

// NewAnnouncement creates an announcement pending audience expansion
func NewAnnouncement(subscriptionID uuid.UUID, title, body string, selection SelectionMode) (*Announcement, error) {
	if title == "" {
		return nil, shared.NewValidationError("Announcement title cannot be empty")
	}
	if !selection.IsValid() {
		return nil, shared.NewValidationError("Invalid selection mode")
	}
	return &Announcement{
		SubscriptionAggregateRoot: shared.NewSubscriptionAggregateRoot(subscriptionID),
		Title:                     title,
		Body:                      body,
		Selection:                 selection,
	}, nil
}

// AudienceSource resolves the property and unit universe of one
// subscription during expansion.
type AudienceSource interface {
	AllPropertyIDs() ([]uuid.UUID, error)
	AllUnitIDs() ([]uuid.UUID, error)
	// UnitIDsOfProperties returns every unit belonging to the given
	// properties.
	UnitIDsOfProperties(propertyIDs []uuid.UUID) ([]uuid.UUID, error)
}

// Expand materializes the announcement's audience from its selection
// mode. Submitted properties and units are honored only where the mode
// says "selective"; "all" sides are resolved through src, which is
// already bounded to the announcement's subscription.
func (a *Announcement) Expand(src AudienceSource, submittedProperties, submittedUnits []uuid.UUID) error {
	switch a.Selection {
	case SelectionAllPropertiesAllUnits:
		props, err := src.AllPropertyIDs()
		if err != nil {
			return err
		}
		units, err := src.AllUnitIDs()
		if err != nil {
			return err
		}
		a.PropertyIDs, a.UnitIDs = props, units

	case SelectionSelectivePropertiesAllUnits:
		units, err := src.UnitIDsOfProperties(submittedProperties)
		if err != nil {
			return err
		}
		a.PropertyIDs, a.UnitIDs = submittedProperties, units

	case SelectionSelectivePropertiesSelectiveUnits:
		a.PropertyIDs, a.UnitIDs = submittedProperties, submittedUnits

	case SelectionAllPropertiesSelectiveUnits:
		props, err := src.AllPropertyIDs()
		if err != nil {
			return err
		}
		a.PropertyIDs, a.UnitIDs = props, submittedUnits

	default:
		return shared.NewValidationError("Invalid selection mode")
	}
	return nil
}
