// Package gateway is the HTTP client for the prediction backend. The
// backend is an opaque collaborator: one POST endpoint, fixed contract,
// failures surfaced to the caller and never retried here.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/homerisk/homerisk/internal/domain"
	internal_errors "github.com/homerisk/homerisk/internal/errors"
	"github.com/homerisk/homerisk/internal/logger"
)

// Client handles all communication with the prediction backend.
type Client struct {
	BaseURL    string
	HttpClient *http.Client
}

// New creates a client for the prediction backend rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    baseURL,
		HttpClient: &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	BHK       int `json:"bhk"`
	Area      int `json:"area"`
	FloodZone int `json:"floodZone"`
}

type predictResponse struct {
	PredictedPrice float64 `json:"predicted_price"`
	RiskScore      float64 `json:"risk_score"`
}

// Predict forwards property attributes to POST {base}/api/predict and
// returns the price/risk pair unchanged.
func (c *Client) Predict(ctx context.Context, attrs domain.PropertyAttributes) (domain.Prediction, error) {
	jsonBody, err := json.Marshal(predictRequest{
		BHK:       attrs.BHK,
		Area:      attrs.Area,
		FloodZone: attrs.FloodZone,
	})
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("failed to marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/predict", bytes.NewBuffer(jsonBody))
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("failed to create predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		logger.Log.Error("prediction backend unreachable", "error", err)
		return domain.Prediction{}, internal_errors.Gateway("Prediction backend unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		logger.Log.Error("prediction backend error", "status", resp.StatusCode, "body", string(body))
		return domain.Prediction{}, internal_errors.Gateway("Prediction failed, check backend")
	}

	var parsed predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		logger.Log.Error("prediction backend returned invalid json", "error", err)
		return domain.Prediction{}, internal_errors.Gateway("Prediction backend returned invalid response")
	}

	return domain.Prediction{
		PredictedPrice: parsed.PredictedPrice,
		RiskScore:      parsed.RiskScore,
	}, nil
}
