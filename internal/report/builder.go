package report

import (
	"fmt"
	"strings"
	"time"

	"homesight/server/internal/models"
)

// Build converts a canonical PropertyData into the shared report
// model. Optional sections are emitted only when their backing data is
// non-empty; the overview is mandatory.
func Build(data models.PropertyData) (*Report, error) {
	overview := data.PropertyOverview
	if overview == nil {
		return nil, ErrMissingOverview
	}

	address := strings.TrimSpace(overview.StreetAddress)
	if address == "" {
		address = "Unknown address"
	}
	cityLine := joinNonEmpty(", ", overview.City, overview.State)
	if overview.ZipCode != "" {
		cityLine = joinNonEmpty(" ", cityLine, overview.ZipCode)
	}

	r := &Report{
		Title:       "Property Investment Analysis",
		Subtitle:    joinNonEmpty(", ", address, cityLine),
		GeneratedAt: time.Now(),
		FileBase:    FileBase(overview.StreetAddress),
	}

	r.Sections = append(r.Sections, Section{
		Kind:       KindHeader,
		Title:      address,
		Paragraphs: nonEmpty(cityLine),
	})

	r.Sections = append(r.Sections, gradeSection(data.AIAnalysis))
	r.Sections = append(r.Sections, keyMetricsSection(overview))

	if rec := strings.TrimSpace(data.AIAnalysis.Recommendation); rec != "" {
		r.Sections = append(r.Sections, Section{
			Kind:       KindRecommendation,
			Title:      "Recommendation",
			Paragraphs: []string{rec},
		})
	}

	r.Sections = append(r.Sections, detailsSection(overview, data.Environmental))

	if lists := insightLists(data.AIAnalysis.Insights); len(lists) > 0 {
		r.Sections = append(r.Sections, Section{
			Kind:  KindInsights,
			Title: "Strengths & Risks",
			Lists: lists,
		})
	}

	if table := comparablesTable(data.Comparables); table != nil {
		r.Sections = append(r.Sections, Section{
			Kind:  KindComparables,
			Title: "Comparable Properties",
			Table: table,
		})
	}

	r.Sections = append(r.Sections, Section{
		Kind: KindFooter,
		Paragraphs: []string{
			fmt.Sprintf("Generated by HomeSight on %s", r.GeneratedAt.Format("January 2, 2006")),
			"This report is for informational purposes only and is not investment advice.",
		},
	})

	return r, nil
}

func gradeSection(ai models.AIAnalysis) Section {
	section := Section{
		Kind:  KindGrade,
		Title: "Investment Grade",
		Fields: []Field{
			{Label: "Grade", Value: ai.Grade},
		},
	}
	if ai.Score != nil {
		section.Fields = append(section.Fields, Field{Label: "Score", Value: number(ai.Score)})
	}
	if ai.Status == models.AnalysisPending {
		section.Paragraphs = []string{"AI analysis has not completed for this property yet."}
	} else if summary := strings.TrimSpace(ai.AnalysisDetails.Summary); summary != "" {
		section.Paragraphs = []string{summary}
	}
	return section
}

func keyMetricsSection(o *models.PropertyOverview) Section {
	fields := []Field{
		{Label: "List Price", Value: money(o.ListPrice)},
		{Label: "Zestimate", Value: money(o.Zestimate)},
		{Label: "Price / Sqft", Value: money(o.PricePerSqft)},
		{Label: "Bedrooms", Value: number(o.Bedrooms)},
		{Label: "Bathrooms", Value: number(o.Bathrooms)},
		{Label: "Square Feet", Value: number(o.SquareFeet)},
		{Label: "Days on Market", Value: intValue(o.DaysOnMarket)},
	}
	return Section{Kind: KindKeyMetrics, Title: "Key Metrics", Fields: fields}
}

func detailsSection(o *models.PropertyOverview, env *models.Environmental) Section {
	fields := []Field{
		{Label: "Year Built", Value: intValue(o.YearBuilt)},
		{Label: "Lot Size", Value: lotSize(o.LotSize)},
	}
	if o.PropertyType != "" {
		fields = append(fields, Field{Label: "Property Type", Value: o.PropertyType})
	}
	if o.ViewCount != nil {
		fields = append(fields, Field{Label: "Views", Value: intValue(o.ViewCount)})
	}
	if o.FavoriteCount != nil {
		fields = append(fields, Field{Label: "Saves", Value: intValue(o.FavoriteCount)})
	}
	fields = append(fields, environmentalFields(env)...)
	return Section{Kind: KindDetails, Title: "Property Details", Fields: fields}
}

func environmentalFields(env *models.Environmental) []Field {
	if env == nil {
		return nil
	}
	var fields []Field
	if f := env.Flood; f != nil {
		value := joinNonEmpty(", ", f.RiskLabel, f.FEMAZone)
		if value == "" {
			value = notAvailable
		}
		if f.RiskTrend != "" {
			value = fmt.Sprintf("%s (trend: %s)", value, f.RiskTrend)
		}
		if f.InsuranceRequired {
			value += ", flood insurance required"
		}
		fields = append(fields, Field{Label: "Flood Risk", Value: value})
	}
	if f := env.Fire; f != nil {
		value := f.Description
		if value == "" {
			value = orNA(f.RiskLabel)
		}
		fields = append(fields, Field{Label: "Fire Risk", Value: value})
	}
	if aq := env.AirQuality; aq != nil {
		fields = append(fields, Field{
			Label: "Air Quality",
			Value: fmt.Sprintf("%s (approx. AQI %d)", orNA(aq.Category), aq.ApproxAQI),
		})
	}
	if eq := env.Earthquake; eq != nil {
		fields = append(fields, Field{Label: "Earthquake Risk", Value: orNA(eq.RiskLabel)})
	}
	if n := env.Noise; n != nil {
		fields = append(fields, Field{Label: "Noise", Value: orNA(n.RiskLabel)})
	}
	return fields
}

func insightLists(insights models.Insights) []TitledList {
	var lists []TitledList
	if len(insights.Strengths) > 0 {
		lists = append(lists, TitledList{Title: "Strengths", Items: insights.Strengths})
	}
	if len(insights.Risks) > 0 {
		lists = append(lists, TitledList{Title: "Risks", Items: insights.Risks})
	}
	return lists
}

func comparablesTable(comps []models.Comparable) *Table {
	if len(comps) == 0 {
		return nil
	}
	table := &Table{
		Columns: []string{"Address", "Price", "Beds", "Baths", "Sqft", "$/Sqft", "Dist (km)"},
	}
	for _, c := range comps {
		table.Rows = append(table.Rows, []string{
			orNA(c.Address),
			money(c.Price),
			number(c.Bedrooms),
			number(c.Bathrooms),
			number(c.SquareFeet),
			money(c.PricePerSqft),
			number(c.DistanceKm),
		})
	}
	return table
}

func lotSize(ls models.LotSize) string {
	if ls.Value == nil {
		return notAvailable
	}
	return fmt.Sprintf("%s %s", number(ls.Value), ls.Unit)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func joinNonEmpty(sep string, values ...string) string {
	return strings.Join(nonEmpty(values...), sep)
}
