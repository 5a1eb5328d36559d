package extract

import (
	"homesight/server/internal/models"
)

// Overview pulls the flat property summary out of the raw
// propertyDetails object, applying the per-field fallback chains the
// upstream schema makes necessary.
func Overview(details Payload) *models.PropertyOverview {
	if details == nil {
		return nil
	}

	price := ListPrice(details)
	sqft := details.Float("livingArea", "resoFacts.livingArea", "livingAreaValue")

	o := &models.PropertyOverview{
		StreetAddress: details.String("streetAddress", "address.streetAddress"),
		City:          details.String("city", "address.city"),
		State:         details.String("state", "address.state"),
		ZipCode:       details.String("zipcode", "address.zipcode"),
		Bedrooms:      details.Float("bedrooms", "resoFacts.bedrooms"),
		Bathrooms:     details.Float("bathrooms", "resoFacts.bathrooms"),
		SquareFeet:    sqft,
		LotSize:       ParseLotSize(details.String("resoFacts.lotSize", "lotSize")),
		YearBuilt:     details.Int("yearBuilt", "resoFacts.yearBuilt"),
		PropertyType:  details.String("homeType", "resoFacts.homeType"),
		ListPrice:     price,
		Zestimate:     details.Float("zestimate"),
		PricePerSqft:  PricePerSqft(price, sqft),
		DaysOnMarket:  details.Int("daysOnZillow", "timeOnZillow"),
		ViewCount:     details.Int("pageViewCount"),
		FavoriteCount: details.Int("favoriteCount"),
		Latitude:      details.Float("latitude", "address.latitude"),
		Longitude:     details.Float("longitude", "address.longitude"),
	}
	return o
}

// Comparables maps the nearbyHomes array in received order. Entries
// that are not objects are skipped; everything else degrades per field.
func Comparables(details Payload) []models.Comparable {
	raw := details.Slice("nearbyHomes")
	if len(raw) == 0 {
		return nil
	}
	comps := make([]models.Comparable, 0, len(raw))
	for _, entry := range raw {
		home := AsPayload(entry)
		if home == nil {
			continue
		}
		price := home.Float("price")
		sqft := home.Float("livingArea", "livingAreaValue")
		comps = append(comps, models.Comparable{
			Address:      home.String("address.streetAddress", "streetAddress"),
			Price:        price,
			Bedrooms:     home.Float("bedrooms"),
			Bathrooms:    home.Float("bathrooms"),
			SquareFeet:   sqft,
			PricePerSqft: PricePerSqft(price, sqft),
			Latitude:     home.Float("latitude", "address.latitude"),
			Longitude:    home.Float("longitude", "address.longitude"),
		})
	}
	if len(comps) == 0 {
		return nil
	}
	return comps
}

// Schools maps the schools array in received order.
func Schools(details Payload) []models.School {
	raw := details.Slice("schools")
	if len(raw) == 0 {
		return nil
	}
	schools := make([]models.School, 0, len(raw))
	for _, entry := range raw {
		s := AsPayload(entry)
		if s == nil {
			continue
		}
		schools = append(schools, models.School{
			Name:     s.String("name"),
			Level:    s.String("level"),
			Rating:   s.Float("rating"),
			Distance: s.Float("distance"),
		})
	}
	if len(schools) == 0 {
		return nil
	}
	return schools
}

// TaxHistory maps the taxHistory array, keeping only entries with a
// usable year.
func TaxHistory(details Payload) []models.TaxRecord {
	raw := details.Slice("taxHistory")
	if len(raw) == 0 {
		return nil
	}
	records := make([]models.TaxRecord, 0, len(raw))
	for _, entry := range raw {
		rec := AsPayload(entry)
		if rec == nil {
			continue
		}
		year := rec.Int("time", "year")
		if year == nil {
			continue
		}
		records = append(records, models.TaxRecord{
			Year:  *year,
			Tax:   rec.Float("taxPaid"),
			Value: rec.Float("value"),
		})
	}
	if len(records) == 0 {
		return nil
	}
	return records
}
