package partial_plan_post

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/TheRebzu/ecodeli-sub009/internal/dto"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/matching"
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
	// пустое тело означает параметры по умолчанию
	var request dto.PartialPlanRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil && !errors.Is(err, io.EOF) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	announcementID := mux.Vars(r)["id"]
	plan, err := h.service.PlanPartialDelivery(r.Context(), announcementID, partial.PlanOptions{
		MaxSegmentDistanceKm: request.MaxSegmentDistanceKm,
		RelayTypes:           dto.ToRelayTypes(request.RelayTypes),
	})
	if err != nil {
		switch {
		case errors.Is(err, partial.ErrInvalidAnnouncementID),
			errors.Is(err, partial.ErrInvalidMaxDistance),
			errors.Is(err, partial.ErrInvalidRelayType):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, matching.ErrAnnouncementNotFound),
			errors.Is(err, partial.ErrSplitNotRequired),
			errors.Is(err, partial.ErrNoViableRelay):
			w.WriteHeader(http.StatusNotFound)
		default:
			h.log.With(
				logger.NewField("announcement_id", announcementID),
				logger.NewField("error", err),
			).Error("plan partial delivery")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(dto.FromPlan(*plan))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
