package geocoding

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"homesight/server/internal/models"
)

// DistanceKm is the great-circle distance between two coordinate
// pairs, rounded to a tenth of a kilometer.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	meters := geo.Distance(orb.Point{lon1, lat1}, orb.Point{lon2, lat2})
	return math.Round(meters/100) / 10
}

// AttachDistances fills DistanceKm on each comparable that carries its
// own coordinates, relative to the subject property. Comparables
// without coordinates are left untouched.
func AttachDistances(overview *models.PropertyOverview, comps []models.Comparable) {
	if overview == nil || overview.Latitude == nil || overview.Longitude == nil {
		return
	}
	for i := range comps {
		if comps[i].Latitude == nil || comps[i].Longitude == nil {
			continue
		}
		d := DistanceKm(*overview.Latitude, *overview.Longitude, *comps[i].Latitude, *comps[i].Longitude)
		comps[i].DistanceKm = &d
	}
}
