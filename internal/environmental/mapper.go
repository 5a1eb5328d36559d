package environmental

import (
	"fmt"
	"strings"

	"homesight/server/internal/extract"
	"homesight/server/internal/models"
)

// Insurance-policy flags that make flood insurance mandatory. Any other
// value, including absence, means not required.
var insuranceRequiredFlags = map[string]bool{
	"FEMA_REQUIRED":   true,
	"LENDER_REQUIRED": true,
}

// Map converts the raw climate sub-object into the internal
// Environmental record. Each slot is filled only when its source group
// exists; a missing group propagates as a nil slot, never a zeroed one.
func Map(details extract.Payload) *models.Environmental {
	climate := details.Map("climate")
	if climate == nil {
		return nil
	}

	env := &models.Environmental{
		Flood:      mapFlood(climate.Map("floodSources.primary")),
		Fire:       mapFire(climate.Map("fireSources.primary")),
		AirQuality: mapAir(climate.Map("airSources.primary")),
		Earthquake: mapGeneric(climate.Map("earthquakeSources.primary")),
		Noise:      mapGeneric(climate.Map("noiseSources.primary")),
	}

	if env.Flood == nil && env.Fire == nil && env.AirQuality == nil &&
		env.Earthquake == nil && env.Noise == nil {
		return nil
	}
	return env
}

func mapFlood(src extract.Payload) *models.FloodRisk {
	if src == nil {
		return nil
	}
	return &models.FloodRisk{
		RiskScore:         src.Float("riskScore.value", "riskScore"),
		RiskLabel:         src.String("riskScore.label"),
		RiskTrend:         riskTrend(src.Slice("probability")),
		FEMAZone:          NormalizeFEMAZone(src.String("femaZone")),
		InsuranceRequired: insuranceRequiredFlags[src.String("insuranceRequirement", "floodInsuranceRequirement")],
	}
}

// riskTrend compares the last and first entries of the probability
// series: strictly rising ends are "increasing", everything else is
// "not changing".
func riskTrend(series []interface{}) string {
	const (
		increasing  = "increasing"
		notChanging = "not changing"
	)
	if len(series) < 2 {
		return notChanging
	}
	first := probabilityValue(series[0])
	last := probabilityValue(series[len(series)-1])
	if first == nil || last == nil {
		return notChanging
	}
	if *last > *first {
		return increasing
	}
	return notChanging
}

// probabilityValue accepts either a bare number or an object with a
// probability field, both of which appear in the wild.
func probabilityValue(v interface{}) *float64 {
	if f, ok := v.(float64); ok {
		return &f
	}
	if p := extract.AsPayload(v); p != nil {
		return p.Float("probability")
	}
	return nil
}

// NormalizeFEMAZone collapses underscores to spaces and expands the
// shorthand zone X variants into their readable forms.
func NormalizeFEMAZone(zone string) string {
	if zone == "" {
		return ""
	}
	zone = strings.ReplaceAll(zone, "_", " ")
	switch strings.ToUpper(zone) {
	case "X UNSHADED":
		return "X (Minimal Risk)"
	case "X SHADED":
		return "X (Moderate Risk)"
	}
	return zone
}

func mapFire(src extract.Payload) *models.FireRisk {
	if src == nil {
		return nil
	}
	label := src.String("riskScore.label")
	description := fmt.Sprintf("%s wildfire risk", orUnknown(label))
	if count := src.Int("historicCountAll"); count != nil && *count > 0 {
		description = fmt.Sprintf("%s, %d historic incidents in the area", description, *count)
	}
	return &models.FireRisk{
		RiskScore:   src.Float("riskScore.value", "riskScore"),
		RiskLabel:   label,
		Description: description,
	}
}

func orUnknown(label string) string {
	if label == "" {
		return "Unknown"
	}
	return label
}

// Fixed AQI categories and placeholder index values keyed off the small
// ordinal risk score. These are deliberately coarse approximations, not
// computed air-quality values.
func mapAir(src extract.Payload) *models.AirQualityRisk {
	if src == nil {
		return nil
	}
	score := src.Float("riskScore.value", "riskScore")

	category := "Good"
	aqi := 45
	if score != nil {
		switch {
		case *score <= 1:
			category, aqi = "Good", 45
		case *score <= 2:
			category, aqi = "Moderate", 75
		case *score <= 4:
			category, aqi = "Unhealthy for Sensitive Groups", 110
		default:
			category, aqi = "Unhealthy", 155
		}
	}
	return &models.AirQualityRisk{
		RiskScore: score,
		Category:  category,
		ApproxAQI: aqi,
	}
}

func mapGeneric(src extract.Payload) *models.GenericRisk {
	if src == nil {
		return nil
	}
	return &models.GenericRisk{
		RiskScore: src.Float("riskScore.value", "riskScore"),
		RiskLabel: src.String("riskScore.label"),
	}
}
