package adaptor

import (
	"encoding/json"
	"net/http"

	"box-office/internal/dto/request"
	"box-office/internal/usecase"
	"box-office/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type HallHandler struct {
	service usecase.HallService
	log     *zap.Logger
}

func NewHallHandler(service usecase.HallService, log *zap.Logger) *HallHandler {
	return &HallHandler{
		service: service,
		log:     log.With(zap.String("handler", "hall")),
	}
}

// CreateHall handles POST /api/admin/halls (admin only)
func (h *HallHandler) CreateHall(w http.ResponseWriter, r *http.Request) {
	var req request.CreateHallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	hall, err := h.service.CreateHall(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create hall")
		return
	}

	utils.ResponseCreated(w, "success", hall)
}

// GetHalls handles GET /api/admin/halls (admin only)
func (h *HallHandler) GetHalls(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	halls, err := h.service.GetHalls(r.Context(), req)
	if err != nil {
		respondServiceError(w, h.log, err, "get halls")
		return
	}

	utils.ResponseSuccess(w, "success", halls)
}

// GetHallByID handles GET /api/admin/halls/{id} (admin only)
func (h *HallHandler) GetHallByID(w http.ResponseWriter, r *http.Request) {
	hallID := chi.URLParam(r, "id")
	if hallID == "" {
		utils.ResponseBadRequest(w, "Hall ID is required", nil)
		return
	}

	hall, err := h.service.GetHallByID(r.Context(), hallID)
	if err != nil {
		respondServiceError(w, h.log, err, "get hall by ID")
		return
	}

	utils.ResponseSuccess(w, "success", hall)
}

// UpdateHall handles PUT /api/admin/halls/{id} (admin only)
func (h *HallHandler) UpdateHall(w http.ResponseWriter, r *http.Request) {
	hallID := chi.URLParam(r, "id")
	if hallID == "" {
		utils.ResponseBadRequest(w, "Hall ID is required", nil)
		return
	}

	var req request.UpdateHallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	hall, err := h.service.UpdateHall(r.Context(), hallID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "update hall")
		return
	}

	utils.ResponseSuccess(w, "success", hall)
}
