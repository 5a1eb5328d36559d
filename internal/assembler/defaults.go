package assembler

// Placeholder values for the not-yet-analyzed state. Downstream code
// branches on AIAnalysis.Status, not on these strings.
const (
	PendingGrade          = "N/A"
	PendingRecommendation = "Analysis pending"
	PendingDetailText     = "Analysis pending"
)

// Constants behind the synthesized placeholder chart series. The
// numbers exist purely so the chart area never renders empty; they are
// not derived from property-specific data beyond the starting price.
const (
	chartYears           = 11
	valueGrowthRate      = 0.03 // 3% annual value growth
	equityGrowthRate     = 0.05 // 5% annual equity growth
	downPaymentFraction  = 0.20
	roiBasePercent       = 5.0
	roiPerYearPercent    = 2.5
	fallbackStartingBase = 300000 // used when no list price is available
)
