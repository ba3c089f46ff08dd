package api

// PredictRequest carries property attributes. Ranges match the backend
// contract; flood_zone may legitimately be 0 so it only carries bounds.
type PredictRequest struct {
	BHK       int `json:"bhk" validate:"required,gte=1,lte=5"`
	Area      int `json:"area" validate:"required,gte=500,lte=10000"`
	FloodZone int `json:"flood_zone" validate:"gte=0,lte=2"`
}

// PredictResponse relays the backend's pair unchanged and adds the derived
// display band.
type PredictResponse struct {
	PredictedPrice float64 `json:"predicted_price"`
	RiskScore      float64 `json:"risk_score"`
	RiskBand       string  `json:"risk_band"`
}
