package presentation

import (
	"net/http"
	"time"

	"github.com/RaikyD/velocity-express/internal/application"
	"github.com/RaikyD/velocity-express/internal/presentation/helpers"
	"github.com/RaikyD/velocity-express/internal/pricing"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(shipments *application.ShipmentsService, tariffs *application.TariffsService, est *pricing.Estimator) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		NewShipmentsHandler(shipments).Register(r)
		NewTariffsHandler(tariffs).Register(r)
		NewEstimateHandler(est).Register(r)
	})

	MountStatic(r)
	return r
}
