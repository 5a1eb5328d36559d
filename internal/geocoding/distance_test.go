package geocoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homesight/server/internal/models"
)

func f(v float64) *float64 { return &v }

func TestDistanceKm(t *testing.T) {
	// Empire State Building to Grand Central, roughly 1.1 km.
	d := DistanceKm(40.7484, -73.9857, 40.7527, -73.9772)
	assert.InDelta(t, 1.1, d, 0.3)

	assert.Equal(t, 0.0, DistanceKm(40.0, -73.0, 40.0, -73.0))
}

func TestAttachDistances(t *testing.T) {
	overview := &models.PropertyOverview{Latitude: f(40.7484), Longitude: f(-73.9857)}
	comps := []models.Comparable{
		{Address: "with coords", Latitude: f(40.7527), Longitude: f(-73.9772)},
		{Address: "without coords"},
	}

	AttachDistances(overview, comps)

	require.NotNil(t, comps[0].DistanceKm)
	assert.InDelta(t, 1.1, *comps[0].DistanceKm, 0.3)
	assert.Nil(t, comps[1].DistanceKm)
}

func TestAttachDistancesNoSubjectCoords(t *testing.T) {
	comps := []models.Comparable{
		{Address: "with coords", Latitude: f(40.0), Longitude: f(-73.0)},
	}
	AttachDistances(&models.PropertyOverview{}, comps)
	assert.Nil(t, comps[0].DistanceKm)

	AttachDistances(nil, comps)
	assert.Nil(t, comps[0].DistanceKm)
}
