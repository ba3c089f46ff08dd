package handler

import (
	"net/http"

	"github.com/homerisk/homerisk/internal/api"
	"github.com/homerisk/homerisk/internal/domain"
	internal_errors "github.com/homerisk/homerisk/internal/errors"
	"github.com/homerisk/homerisk/internal/middleware/metrics"
	"github.com/homerisk/homerisk/internal/utils"
)

func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var body api.PredictRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	prediction, err := h.predict.Predict(r.Context(), domain.PropertyAttributes{
		BHK:       body.BHK,
		Area:      body.Area,
		FloodZone: body.FloodZone,
	})
	if err != nil {
		if e, ok := err.(*internal_errors.ErrorWithStatusCode); ok && e.StatusCode == http.StatusBadGateway {
			metrics.GatewayFailures.Inc()
		}
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	// predicted_price and risk_score are relayed exactly as the backend
	// returned them; only risk_band is derived here.
	writeJSON(w, http.StatusOK, api.PredictResponse{
		PredictedPrice: prediction.PredictedPrice,
		RiskScore:      prediction.RiskScore,
		RiskBand:       string(prediction.Band()),
	})
}
