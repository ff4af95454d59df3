package presentation

import (
	"errors"
	"net/http"

	"github.com/RaikyD/velocity-express/internal/domain"
	"github.com/RaikyD/velocity-express/internal/presentation/helpers"
	"github.com/RaikyD/velocity-express/internal/pricing"
	"github.com/go-chi/chi/v5"
)

type EstimateHandler struct {
	est *pricing.Estimator
}

func NewEstimateHandler(est *pricing.Estimator) *EstimateHandler {
	return &EstimateHandler{est: est}
}

func (h *EstimateHandler) Register(r chi.Router) {
	r.Post("/estimate", h.Estimate)
}

func (h *EstimateHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var p domain.PackageDetail
	if err := helpers.DecodeJSON(r.Body, &p); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	res, err := h.est.Estimate(p)
	if errors.Is(err, pricing.ErrInvalidPackage) {
		helpers.HttpError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to estimate")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}
