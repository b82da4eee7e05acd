package partial_plan_get

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TheRebzu/ecodeli-sub009/internal/dto"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/partial"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
	"github.com/gorilla/mux"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	planID := mux.Vars(r)["id"]
	if planID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	plan, err := h.service.GetPlan(r.Context(), planID)
	if err != nil {
		switch {
		case errors.Is(err, partial.ErrPlanNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromPlan(*plan))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
