package domain

// PropertyAttributes is the validated input forwarded to the prediction
// backend. Ranges match the backend contract: BHK 1..5, Area 500..10000
// sqft, FloodZone 0..2.
type PropertyAttributes struct {
	BHK       int
	Area      int
	FloodZone int
}

// Prediction is the backend's answer, relayed to the caller unchanged.
type Prediction struct {
	PredictedPrice float64
	RiskScore      float64
}

// RiskBand buckets a 0..100 risk score for display.
type RiskBand string

const (
	RiskLow    RiskBand = "low"
	RiskMedium RiskBand = "medium"
	RiskHigh   RiskBand = "high"
)

func (p Prediction) Band() RiskBand {
	switch {
	case p.RiskScore < 34:
		return RiskLow
	case p.RiskScore < 67:
		return RiskMedium
	default:
		return RiskHigh
	}
}
