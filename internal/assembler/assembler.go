package assembler

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"homesight/server/internal/environmental"
	"homesight/server/internal/extract"
	"homesight/server/internal/geocoding"
	"homesight/server/internal/models"
)

// Assembler composes extractor, normalizer and risk-mapper outputs into
// the canonical PropertyData record.
type Assembler struct {
	logger *logrus.Logger
	now    func() time.Time
}

func New(logger *logrus.Logger) *Assembler {
	return &Assembler{logger: logger, now: time.Now}
}

// Assemble builds one canonical record from the decoded webhook
// response. The transform never fails: missing or malformed fields
// degrade to nil or placeholder values.
func (a *Assembler) Assemble(response map[string]interface{}) models.PropertyData {
	payload := extract.Payload(response)

	details := payload.Map("rawApiData.propertyDetails")
	if details == nil {
		details = payload.Map("propertyDetails")
	}
	if details == nil {
		a.logger.Warn("Webhook response carries no propertyDetails")
	}

	data := models.PropertyData{
		PropertyOverview: extract.Overview(details),
		Environmental:    environmental.Map(details),
		Comparables:      extract.Comparables(details),
		Schools:          extract.Schools(details),
		TaxHistory:       extract.TaxHistory(details),
		AIAnalysis:       a.aiAnalysis(payload),
	}
	geocoding.AttachDistances(data.PropertyOverview, data.Comparables)

	if charts := upstreamCharts(payload); charts != nil {
		data.Charts = charts
	} else {
		data.Charts = a.placeholderCharts(data.PropertyOverview)
	}
	return data
}

// aiAnalysis maps the AI scoring result when the webhook supplied one,
// else fills the pending variant so rendering stays unconditional.
func (a *Assembler) aiAnalysis(payload extract.Payload) models.AIAnalysis {
	ai := payload.Map("aiAnalysis")
	if ai == nil {
		ai = payload.Map("analysis")
	}
	if ai == nil {
		return PendingAnalysis()
	}

	result := models.AIAnalysis{
		Status:         models.AnalysisComplete,
		Grade:          ai.String("grade"),
		Score:          ai.Float("score"),
		Recommendation: ai.String("recommendation"),
		Insights: models.Insights{
			Strengths: stringSlice(ai.Slice("insights.strengths")),
			Risks:     stringSlice(ai.Slice("insights.risks")),
		},
		AnalysisDetails: models.AnalysisDetails{
			MarketPosition:    ai.String("analysisDetails.marketPosition"),
			InvestmentOutlook: ai.String("analysisDetails.investmentOutlook"),
			Summary:           ai.String("analysisDetails.summary"),
		},
	}
	if result.Grade == "" {
		result.Grade = PendingGrade
	}
	if result.Recommendation == "" {
		result.Recommendation = PendingRecommendation
	}
	return result
}

// PendingAnalysis is the tagged placeholder variant used until the AI
// step has produced a real result.
func PendingAnalysis() models.AIAnalysis {
	return models.AIAnalysis{
		Status:         models.AnalysisPending,
		Grade:          PendingGrade,
		Recommendation: PendingRecommendation,
		AnalysisDetails: models.AnalysisDetails{
			MarketPosition:    PendingDetailText,
			InvestmentOutlook: PendingDetailText,
			Summary:           PendingDetailText,
		},
	}
}

// upstreamCharts keeps charts the response already supplies. They are
// never overwritten with synthesized data.
func upstreamCharts(payload extract.Payload) *models.Charts {
	raw := payload.Map("charts")
	if raw == nil {
		return nil
	}
	charts := &models.Charts{
		Years:        intSlice(raw.Slice("years")),
		ValueSeries:  floatSlice(raw.Slice("valueSeries")),
		ROISeries:    floatSlice(raw.Slice("roiSeries")),
		EquitySeries: floatSlice(raw.Slice("equitySeries")),
	}
	if len(charts.ValueSeries) == 0 && len(charts.ROISeries) == 0 && len(charts.EquitySeries) == 0 {
		return nil
	}
	return charts
}

// placeholderCharts synthesizes deterministic 11-year projections from
// the fixed growth constants so the UI chart area never renders empty.
func (a *Assembler) placeholderCharts(overview *models.PropertyOverview) *models.Charts {
	base := float64(fallbackStartingBase)
	if overview != nil && overview.ListPrice != nil && *overview.ListPrice > 0 {
		base = *overview.ListPrice
	}
	equityBase := base * downPaymentFraction
	startYear := a.now().Year()

	charts := &models.Charts{
		Years:        make([]int, chartYears),
		ValueSeries:  make([]float64, chartYears),
		ROISeries:    make([]float64, chartYears),
		EquitySeries: make([]float64, chartYears),
	}
	for i := 0; i < chartYears; i++ {
		charts.Years[i] = startYear + i
		charts.ValueSeries[i] = math.Round(base * math.Pow(1+valueGrowthRate, float64(i)))
		charts.ROISeries[i] = float64(i)*roiPerYearPercent + roiBasePercent
		charts.EquitySeries[i] = math.Round(equityBase * math.Pow(1+equityGrowthRate, float64(i)))
	}
	return charts
}

func stringSlice(raw []interface{}) []string {
	var out []string
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func floatSlice(raw []interface{}) []float64 {
	var out []float64
	for _, v := range raw {
		if f, ok := v.(float64); ok {
			out = append(out, f)
		}
	}
	return out
}

func intSlice(raw []interface{}) []int {
	var out []int
	for _, v := range raw {
		if f, ok := v.(float64); ok {
			out = append(out, int(f))
		}
	}
	return out
}
