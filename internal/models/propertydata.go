package models

// PropertyData is the canonical record produced by the assembler. It is
// persisted verbatim as the analysis_data JSON blob and consumed by the
// report builder and the UI. Once assembled it is never mutated.
type PropertyData struct {
	PropertyOverview *PropertyOverview `json:"propertyOverview,omitempty"`
	Environmental    *Environmental    `json:"environmental,omitempty"`
	Comparables      []Comparable      `json:"comparables,omitempty"`
	Schools          []School          `json:"schools,omitempty"`
	TaxHistory       []TaxRecord       `json:"taxHistory,omitempty"`
	AIAnalysis       AIAnalysis        `json:"aiAnalysis"`
	Charts           *Charts           `json:"charts,omitempty"`
}

// PropertyOverview is the flat summary of the subject property.
type PropertyOverview struct {
	StreetAddress string   `json:"streetAddress"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	ZipCode       string   `json:"zipCode"`
	Bedrooms      *float64 `json:"bedrooms"`
	Bathrooms     *float64 `json:"bathrooms"`
	SquareFeet    *float64 `json:"squareFeet"`
	LotSize       LotSize  `json:"lotSize"`
	YearBuilt     *int     `json:"yearBuilt"`
	PropertyType  string   `json:"propertyType,omitempty"`

	// ListPrice comes from the most recent priceHistory entry when one
	// exists, falling back to the static price field only when the
	// history is empty.
	ListPrice     *float64 `json:"listPrice"`
	Zestimate     *float64 `json:"zestimate"`
	PricePerSqft  *float64 `json:"pricePerSqft"`
	DaysOnMarket  *int     `json:"daysOnMarket"`
	ViewCount     *int     `json:"viewCount"`
	FavoriteCount *int     `json:"favoriteCount"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

// LotSize is a parsed value + unit pair. Value is nil when the source
// string did not contain a leading number; Unit keeps its default in
// that case so callers always have a unit to print.
type LotSize struct {
	Value *float64 `json:"value"`
	Unit  string   `json:"unit"`
}

// Environmental holds independent risk slots. A slot is present only
// when the corresponding raw source group existed; absence propagates
// as a nil pointer, never a zeroed sub-record.
type Environmental struct {
	Flood      *FloodRisk      `json:"flood,omitempty"`
	Fire       *FireRisk       `json:"fire,omitempty"`
	AirQuality *AirQualityRisk `json:"airQuality,omitempty"`
	Earthquake *GenericRisk    `json:"earthquake,omitempty"`
	Noise      *GenericRisk    `json:"noise,omitempty"`
}

type FloodRisk struct {
	RiskScore         *float64 `json:"riskScore"`
	RiskLabel         string   `json:"riskLabel"`
	RiskTrend         string   `json:"riskTrend"`
	FEMAZone          string   `json:"femaZone,omitempty"`
	InsuranceRequired bool     `json:"insuranceRequired"`
}

type FireRisk struct {
	RiskScore   *float64 `json:"riskScore"`
	RiskLabel   string   `json:"riskLabel"`
	Description string   `json:"description"`
}

type AirQualityRisk struct {
	RiskScore *float64 `json:"riskScore"`
	Category  string   `json:"category"`
	// ApproxAQI is one of four fixed placeholder values keyed off the
	// ordinal risk score. It is deliberately coarse and is not a
	// computed air-quality index.
	ApproxAQI int `json:"approxAqi"`
}

type GenericRisk struct {
	RiskScore *float64 `json:"riskScore"`
	RiskLabel string   `json:"riskLabel"`
}

// Comparable is a nearby-property summary. Order is preserved as
// received; there is no uniqueness constraint.
type Comparable struct {
	Address      string   `json:"address"`
	Price        *float64 `json:"price"`
	Bedrooms     *float64 `json:"bedrooms"`
	Bathrooms    *float64 `json:"bathrooms"`
	SquareFeet   *float64 `json:"squareFeet"`
	PricePerSqft *float64 `json:"pricePerSqft"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	DistanceKm   *float64 `json:"distanceKm,omitempty"`
}

type School struct {
	Name     string   `json:"name"`
	Level    string   `json:"level,omitempty"`
	Rating   *float64 `json:"rating"`
	Distance *float64 `json:"distance"`
}

type TaxRecord struct {
	Year  int      `json:"year"`
	Tax   *float64 `json:"tax"`
	Value *float64 `json:"value"`
}

// AnalysisStatus tags whether the AI fields hold real results or the
// pending placeholders.
type AnalysisStatus string

const (
	AnalysisPending  AnalysisStatus = "pending"
	AnalysisComplete AnalysisStatus = "complete"
)

// AIAnalysis is always present on a PropertyData, with either real
// values or the pending placeholders, so rendering stays unconditional.
type AIAnalysis struct {
	Status          AnalysisStatus  `json:"status"`
	Grade           string          `json:"grade"`
	Score           *float64        `json:"score"`
	Recommendation  string          `json:"recommendation"`
	Insights        Insights        `json:"insights"`
	AnalysisDetails AnalysisDetails `json:"analysisDetails"`
}

type Insights struct {
	Strengths []string `json:"strengths"`
	Risks     []string `json:"risks"`
}

type AnalysisDetails struct {
	MarketPosition    string `json:"marketPosition"`
	InvestmentOutlook string `json:"investmentOutlook"`
	Summary           string `json:"summary"`
}

// Charts holds the projection series rendered by the UI. When the
// upstream response carries its own charts they are kept verbatim;
// otherwise deterministic placeholder series are synthesized so the
// chart area never renders empty.
type Charts struct {
	Years        []int     `json:"years"`
	ValueSeries  []float64 `json:"valueSeries"`
	ROISeries    []float64 `json:"roiSeries"`
	EquitySeries []float64 `json:"equitySeries"`
}
