package communication

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAudience struct {
	properties []uuid.UUID
	units      []uuid.UUID
	byProperty map[uuid.UUID][]uuid.UUID
}

func (s *stubAudience) AllPropertyIDs() ([]uuid.UUID, error) { return s.properties, nil }
func (s *stubAudience) AllUnitIDs() ([]uuid.UUID, error)     { return s.units, nil }
func (s *stubAudience) UnitIDsOfProperties(propertyIDs []uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, pid := range propertyIDs {
		out = append(out, s.byProperty[pid]...)
	}
	return out, nil
}

func newStubAudience() (*stubAudience, []uuid.UUID, []uuid.UUID) {
	p1, p2 := uuid.New(), uuid.New()
	u1, u2 := uuid.New(), uuid.New()
	return &stubAudience{
		properties: []uuid.UUID{p1, p2},
		units:      []uuid.UUID{u1, u2},
		byProperty: map[uuid.UUID][]uuid.UUID{p1: {u1}, p2: {u2}},
	}, []uuid.UUID{p1, p2}, []uuid.UUID{u1, u2}
}

func TestNewAnnouncement_Validation(t *testing.T) {
	_, err := NewAnnouncement(uuid.New(), "", "body", SelectionAllPropertiesAllUnits)
	assert.Error(t, err)

	_, err = NewAnnouncement(uuid.New(), "Pool closure", "body", SelectionMode("ALL"))
	assert.Error(t, err)
}

func TestExpand_AllPropertiesAllUnits(t *testing.T) {
	src, props, units := newStubAudience()
	a, err := NewAnnouncement(uuid.New(), "Pool closure", "body", SelectionAllPropertiesAllUnits)
	require.NoError(t, err)

	require.NoError(t, a.Expand(src, nil, nil))
	assert.ElementsMatch(t, props, a.PropertyIDs)
	assert.ElementsMatch(t, units, a.UnitIDs)
}

func TestExpand_SelectivePropertiesAllUnits(t *testing.T) {
	src, props, _ := newStubAudience()
	a, err := NewAnnouncement(uuid.New(), "Pool closure", "body", SelectionSelectivePropertiesAllUnits)
	require.NoError(t, err)

	require.NoError(t, a.Expand(src, props[:1], nil))
	assert.Equal(t, props[:1], a.PropertyIDs)
	assert.ElementsMatch(t, src.byProperty[props[0]], a.UnitIDs,
		"units resolved from the submitted property set")
}

func TestExpand_SelectiveBoth(t *testing.T) {
	src, props, units := newStubAudience()
	a, err := NewAnnouncement(uuid.New(), "Pool closure", "body", SelectionSelectivePropertiesSelectiveUnits)
	require.NoError(t, err)

	require.NoError(t, a.Expand(src, props[:1], units[1:]))
	assert.Equal(t, props[:1], a.PropertyIDs)
	assert.Equal(t, units[1:], a.UnitIDs)
}

func TestExpand_AllPropertiesSelectiveUnits(t *testing.T) {
	src, props, units := newStubAudience()
	a, err := NewAnnouncement(uuid.New(), "Pool closure", "body", SelectionAllPropertiesSelectiveUnits)
	require.NoError(t, err)

	require.NoError(t, a.Expand(src, nil, units[:1]))
	assert.ElementsMatch(t, props, a.PropertyIDs)
	assert.Equal(t, units[:1], a.UnitIDs)
}
