package presentation

import (
	"bufio"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/RaikyD/velocity-express/internal/application"
	"github.com/RaikyD/velocity-express/internal/domain"
	"github.com/RaikyD/velocity-express/internal/logger"
	"github.com/RaikyD/velocity-express/internal/presentation/helpers"
	"github.com/RaikyD/velocity-express/internal/query"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ShipmentsHandler struct {
	svc *application.ShipmentsService
}

func NewShipmentsHandler(svc *application.ShipmentsService) *ShipmentsHandler {
	return &ShipmentsHandler{svc: svc}
}

func (h *ShipmentsHandler) Register(r chi.Router) {
	r.Get("/shipments", h.ListShipments)
	r.Post("/shipments", h.CreateShipment)
	r.Post("/shipments/generate", h.GenerateShipments)
	r.Get("/shipments/{tracking}", h.GetShipment)
	r.Patch("/shipments/{tracking}/status", h.UpdateStatus)
}

// GET /shipments?q=&status=&from=&to=&sort=&dir=&limit=&offset=
func (h *ShipmentsHandler) ListShipments(w http.ResponseWriter, r *http.Request) {
	p, err := listParams(r)
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.List(r.Context(), p)
	if err != nil {
		if errors.Is(err, query.ErrUnknownSortField) {
			helpers.HttpError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Warn("list shipments failed", "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "failed to list shipments")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

func listParams(r *http.Request) (application.ListParams, error) {
	var p application.ListParams
	q := r.URL.Query()

	status, err := query.ParseStatusFilter(q.Get("status"))
	if err != nil {
		return p, err
	}
	from, err := helpers.QueryDate(r, "from")
	if err != nil {
		return p, errors.New("from must be YYYY-MM-DD")
	}
	to, err := helpers.QueryDate(r, "to")
	if err != nil {
		return p, errors.New("to must be YYYY-MM-DD")
	}
	dir, err := query.ParseDirection(q.Get("dir"))
	if err != nil {
		return p, err
	}
	limit, err := helpers.QueryInt(r, "limit", 0)
	if err != nil {
		return p, errors.New("limit must be a non-negative integer")
	}
	offset, err := helpers.QueryInt(r, "offset", 0)
	if err != nil {
		return p, errors.New("offset must be a non-negative integer")
	}

	p.Criteria = query.Criteria{
		Query:  strings.TrimSpace(q.Get("q")),
		Status: status,
		From:   from,
		To:     to,
	}
	p.Sort = query.SortKey{Field: q.Get("sort"), Dir: dir}
	p.Limit = limit
	p.Offset = offset
	return p, nil
}

func (h *ShipmentsHandler) GetShipment(w http.ResponseWriter, r *http.Request) {
	tracking := chi.URLParam(r, "tracking")
	if strings.TrimSpace(tracking) == "" {
		helpers.HttpError(w, http.StatusBadRequest, "tracking number is empty")
		return
	}

	sh, err := h.svc.Get(r.Context(), tracking)
	if errors.Is(err, application.ErrShipmentNotFound) {
		helpers.HttpError(w, http.StatusNotFound, "shipment not found")
		return
	}
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "failed to get shipment")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, sh)
}

// CreateShipment accepts the shipment as
// - application/json:    the body is the shipment
// - text/plain:          the body is a JSON string
// - multipart/form-data: a .json file in the "file" field
func (h *ShipmentsHandler) CreateShipment(w http.ResponseWriter, r *http.Request) {
	mediatype, params, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var sh domain.Shipment
	var readErr error

	switch mediatype {
	case "application/json", "text/plain":
		readErr = helpers.DecodeJSON(r.Body, &sh)
	case "multipart/form-data":
		readErr = errors.New("no file part")
		mr := multipart.NewReader(r.Body, params["boundary"])
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				readErr = err
				break
			}
			if part.FormName() != "file" {
				continue
			}
			readErr = helpers.DecodeJSON(bufio.NewReader(io.LimitReader(part, 2<<20)), &sh)
			_ = part.Close()
			break
		}
	default:
		helpers.HttpError(w, http.StatusUnsupportedMediaType, "unsupported content-type")
		return
	}

	if readErr != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+readErr.Error())
		return
	}

	if err := h.svc.AddShipment(r.Context(), &sh); err != nil {
		writeShipmentError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, map[string]any{
		"status":          "ok",
		"id":              sh.ID,
		"tracking_number": sh.TrackingNumber,
	})
}

type statusRequest struct {
	Status domain.ShipmentStatus `json:"status"`
}

func (h *ShipmentsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	sh, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "tracking"), req.Status)
	if err != nil {
		writeShipmentError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, sh)
}

func (h *ShipmentsHandler) GenerateShipments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("count")
	n := 1
	if q != "" {
		if v, err := strconv.Atoi(q); err == nil && v > 0 && v <= 1000 {
			n = v
		}
	}

	var created []string
	for i := 0; i < n; i++ {
		sh := genDemoShipment(i)
		if err := h.svc.AddShipment(r.Context(), &sh); err != nil {
			if !errors.Is(err, application.ErrShipmentAlreadyExists) {
				logger.Warn("generate: add failed", "err", err)
			}
			continue
		}
		created = append(created, sh.TrackingNumber)
	}

	helpers.WriteJSON(w, http.StatusCreated, map[string]any{
		"status":            "ok",
		"created_trackings": created,
	})
}

func writeShipmentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidShipment):
		helpers.HttpError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrShipmentAlreadyExists):
		helpers.HttpError(w, http.StatusConflict, "shipment already exists")
	case errors.Is(err, application.ErrShipmentNotFound):
		helpers.HttpError(w, http.StatusNotFound, "shipment not found")
	default:
		logger.Warn("shipment request failed", "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "internal error")
	}
}

var demoServices = []domain.ServiceType{domain.ServiceRegular, domain.ServiceExpress, domain.ServiceDrone}

func genDemoShipment(i int) domain.Shipment {
	now := time.Now().UTC()
	svc := demoServices[i%len(demoServices)]
	return domain.Shipment{
		ID:                uuid.New(),
		TrackingNumber:    "VCX" + strconv.FormatInt(now.UnixNano(), 10)[8:] + strconv.Itoa(i),
		Status:            domain.StatusPending,
		Service:           svc,
		SenderName:        "Budi Santoso",
		SenderPhone:       "081234567890",
		RecipientName:     "Siti Rahayu",
		RecipientPhone:    "081298765432",
		Destination:       "Jl. Merdeka No. 1, Jakarta",
		WeightKg:          1.2,
		Cost:              15000,
		CreatedAt:         now,
		EstimatedDelivery: now.Add(72 * time.Hour),
	}
}
