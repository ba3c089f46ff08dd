package service

import (
	"context"
	"time"

	"github.com/homerisk/homerisk/internal/domain"
	"github.com/homerisk/homerisk/internal/errors"
)

type PredictService interface {
	Predict(ctx context.Context, attrs domain.PropertyAttributes) (domain.Prediction, error)
}

type PredictionGateway interface {
	Predict(ctx context.Context, attrs domain.PropertyAttributes) (domain.Prediction, error)
}

type Predict struct {
	gateway PredictionGateway
	timeout time.Duration
}

func NewPredict(gateway PredictionGateway, timeout time.Duration) *Predict {
	return &Predict{gateway: gateway, timeout: timeout}
}

// Predict validates attribute ranges and forwards to the backend. Gateway
// failures pass through untouched; they are never retried.
func (p *Predict) Predict(ctx context.Context, attrs domain.PropertyAttributes) (domain.Prediction, error) {
	if attrs.BHK < 1 || attrs.BHK > 5 {
		return domain.Prediction{}, errors.Validation("BHK must be between 1 and 5")
	}
	if attrs.Area < 500 || attrs.Area > 10000 {
		return domain.Prediction{}, errors.Validation("Area must be between 500 and 10000 sqft")
	}
	if attrs.FloodZone < 0 || attrs.FloodZone > 2 {
		return domain.Prediction{}, errors.Validation("Flood zone must be 0, 1 or 2")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.gateway.Predict(ctx, attrs)
}
