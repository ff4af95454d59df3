package presentation

import (
	"errors"
	"net/http"
	"strings"

	"github.com/RaikyD/velocity-express/internal/application"
	"github.com/RaikyD/velocity-express/internal/logger"
	"github.com/RaikyD/velocity-express/internal/presentation/helpers"
	"github.com/RaikyD/velocity-express/internal/query"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ActorHeader names the admin making the change; the UI sends it.
const ActorHeader = "X-Actor"

type TariffsHandler struct {
	svc *application.TariffsService
}

func NewTariffsHandler(svc *application.TariffsService) *TariffsHandler {
	return &TariffsHandler{svc: svc}
}

func (h *TariffsHandler) Register(r chi.Router) {
	r.Get("/tariffs", h.ListTariffs)
	r.Post("/tariffs", h.CreateTariff)
	r.Get("/tariffs/history", h.History)
	r.Put("/tariffs/{id}", h.UpdateTariff)
	r.Delete("/tariffs/{id}", h.DeleteTariff)
}

func sortKey(r *http.Request) (query.SortKey, error) {
	dir, err := query.ParseDirection(r.URL.Query().Get("dir"))
	if err != nil {
		return query.SortKey{}, err
	}
	return query.SortKey{Field: r.URL.Query().Get("sort"), Dir: dir}, nil
}

func actor(r *http.Request) string {
	if a := strings.TrimSpace(r.Header.Get(ActorHeader)); a != "" {
		return a
	}
	return "admin"
}

func (h *TariffsHandler) ListTariffs(w http.ResponseWriter, r *http.Request) {
	key, err := sortKey(r)
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.List(r.Context(), key)
	if err != nil {
		writeTariffError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, rows)
}

func (h *TariffsHandler) CreateTariff(w http.ResponseWriter, r *http.Request) {
	var in application.TariffInput
	if err := helpers.DecodeJSON(r.Body, &in); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	t, err := h.svc.Create(r.Context(), in, actor(r))
	if err != nil {
		writeTariffError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, t)
}

func (h *TariffsHandler) UpdateTariff(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid tariff id")
		return
	}
	var in application.TariffInput
	if err := helpers.DecodeJSON(r.Body, &in); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	t, err := h.svc.Update(r.Context(), id, in, actor(r))
	if err != nil {
		writeTariffError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, t)
}

func (h *TariffsHandler) DeleteTariff(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid tariff id")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeTariffError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /tariffs/history?tariff_id=&sort=&dir=
func (h *TariffsHandler) History(w http.ResponseWriter, r *http.Request) {
	key, err := sortKey(r)
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, err.Error())
		return
	}
	var id uuid.UUID
	if v := r.URL.Query().Get("tariff_id"); v != "" {
		if id, err = uuid.Parse(v); err != nil {
			helpers.HttpError(w, http.StatusBadRequest, "invalid tariff_id")
			return
		}
	}
	rows, err := h.svc.History(r.Context(), id, key)
	if err != nil {
		writeTariffError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, rows)
}

func writeTariffError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidTariff), errors.Is(err, query.ErrUnknownSortField):
		helpers.HttpError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrTariffNotFound):
		helpers.HttpError(w, http.StatusNotFound, "tariff not found")
	default:
		logger.Warn("tariff request failed", "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "internal error")
	}
}
