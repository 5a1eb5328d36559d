package report

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homesight/server/internal/models"
)

func f(v float64) *float64 {
	return &v
}

func sampleData() models.PropertyData {
	year := 1987
	dom := 12
	return models.PropertyData{
		PropertyOverview: &models.PropertyOverview{
			StreetAddress: "44 Hill Rd",
			City:          "Stowe",
			State:         "VT",
			ZipCode:       "05672",
			Bedrooms:      f(3),
			Bathrooms:     f(2),
			SquareFeet:    f(1800),
			LotSize:       models.LotSize{Value: f(0.5), Unit: "acres"},
			YearBuilt:     &year,
			ListPrice:     f(450000),
			Zestimate:     f(460000),
			PricePerSqft:  f(250),
			DaysOnMarket:  &dom,
		},
		Environmental: &models.Environmental{
			Flood: &models.FloodRisk{
				RiskScore: f(3),
				RiskLabel: "Minor",
				RiskTrend: "increasing",
				FEMAZone:  "X (Minimal Risk)",
			},
		},
		Comparables: []models.Comparable{
			{Address: "10 Elm St", Price: f(500000), SquareFeet: f(2000), PricePerSqft: f(250)},
		},
		AIAnalysis: models.AIAnalysis{
			Status:         models.AnalysisComplete,
			Grade:          "B+",
			Score:          f(78),
			Recommendation: "Solid rental candidate",
			Insights: models.Insights{
				Strengths: []string{"Walkable location"},
				Risks:     []string{"Aging roof"},
			},
		},
	}
}

func TestBuildSectionOrdering(t *testing.T) {
	r, err := Build(sampleData())
	require.NoError(t, err)

	var kinds []SectionKind
	for _, s := range r.Sections {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []SectionKind{
		KindHeader, KindGrade, KindKeyMetrics, KindRecommendation,
		KindDetails, KindInsights, KindComparables, KindFooter,
	}, kinds)
	assert.Equal(t, "44_Hill_Rd", r.FileBase)
}

func TestBuildOmitsEmptySections(t *testing.T) {
	data := sampleData()
	data.Comparables = nil
	data.AIAnalysis.Insights = models.Insights{}
	data.AIAnalysis.Recommendation = ""

	r, err := Build(data)
	require.NoError(t, err)
	for _, s := range r.Sections {
		assert.NotEqual(t, KindComparables, s.Kind)
		assert.NotEqual(t, KindInsights, s.Kind)
		assert.NotEqual(t, KindRecommendation, s.Kind)
	}
}

func TestExportersRejectMissingOverview(t *testing.T) {
	data := sampleData()
	data.PropertyOverview = nil

	_, err := RenderPDF(data)
	assert.ErrorIs(t, err, ErrMissingOverview)

	_, err = RenderDOCX(data)
	assert.ErrorIs(t, err, ErrMissingOverview)

	_, err = RenderText(data)
	assert.ErrorIs(t, err, ErrMissingOverview)

	_, err = RenderHTML(data)
	assert.ErrorIs(t, err, ErrMissingOverview)
}

func TestRenderText(t *testing.T) {
	out, err := RenderText(sampleData())
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "PROPERTY INVESTMENT ANALYSIS")
	assert.Contains(t, text, "44 Hill Rd")
	assert.Contains(t, text, "List Price:")
	assert.Contains(t, text, "$450,000")
	assert.Contains(t, text, "Strengths:")
	assert.Contains(t, text, "* Walkable location")
	assert.Contains(t, text, "10 Elm St")
	assert.Contains(t, text, "0.5 acres")
}

func TestRenderTextSubstitutesNA(t *testing.T) {
	data := sampleData()
	data.PropertyOverview.Zestimate = nil
	data.PropertyOverview.Bathrooms = nil

	out, err := RenderText(data)
	require.NoError(t, err)
	assert.Contains(t, string(out), "N/A")
}

func TestRenderPDF(t *testing.T) {
	out, err := RenderPDF(sampleData())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output should be a PDF document")
}

func TestRenderPDFManyComparablesPaginates(t *testing.T) {
	data := sampleData()
	for i := 0; i < 120; i++ {
		data.Comparables = append(data.Comparables, models.Comparable{
			Address: "Filler St", Price: f(100000), SquareFeet: f(1000), PricePerSqft: f(100),
		})
	}
	out, err := RenderPDF(data)
	require.NoError(t, err)
	// Two page objects plus the pages tree shows the cursor rolled over.
	assert.Greater(t, bytes.Count(out, []byte("/Type /Page")), 2)
}

func TestRenderDOCX(t *testing.T) {
	out, err := RenderDOCX(sampleData())
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)

	names := make(map[string]bool)
	var document string
	for _, file := range zr.File {
		names[file.Name] = true
		if file.Name == "word/document.xml" {
			rc, err := file.Open()
			require.NoError(t, err)
			content, err := io.ReadAll(rc)
			rc.Close()
			require.NoError(t, err)
			document = string(content)
		}
	}

	assert.True(t, names["[Content_Types].xml"])
	assert.True(t, names["_rels/.rels"])
	require.True(t, names["word/document.xml"])

	assert.Contains(t, document, "44 Hill Rd")
	assert.Contains(t, document, "Investment Grade")
	assert.Contains(t, document, "<w:tbl>")
	assert.Contains(t, document, "10 Elm St")
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML(sampleData())
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "window.print()")
	assert.Contains(t, html, "44 Hill Rd")
	assert.Contains(t, html, "<table>")
}

func TestFileBase(t *testing.T) {
	assert.Equal(t, "44_Hill_Rd", FileBase("44 Hill Rd"))
	assert.Equal(t, "12_Maple_Ln_Apt_2B", FileBase("12 Maple Ln, Apt #2B"))
	assert.Equal(t, "property_report", FileBase(""))
	assert.Equal(t, "property_report", FileBase("!!!"))
}

func TestMoneyFormatting(t *testing.T) {
	assert.Equal(t, "$1,250,000", money(f(1250000)))
	assert.Equal(t, "$450", money(f(450)))
	assert.Equal(t, "N/A", money(nil))
	assert.False(t, strings.Contains(money(f(999)), ","))
}
