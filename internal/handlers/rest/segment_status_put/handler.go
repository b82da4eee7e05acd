package segment_status_put

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TheRebzu/ecodeli-sub009/internal/dto"
	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
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
	var request dto.SegmentStatusRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	status := entities.SegmentStatus(request.Status)
	if !status.Valid() {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	segmentID := mux.Vars(r)["id"]
	segment, err := h.service.UpdateSegmentStatus(r.Context(), segmentID, status, request.CourierID)
	if err != nil {
		switch {
		case errors.Is(err, partial.ErrInvalidSegmentID),
			errors.Is(err, partial.ErrInvalidCourierID),
			errors.Is(err, partial.ErrInvalidStatus):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, partial.ErrSegmentNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, partial.ErrInvalidTransition),
			errors.Is(err, partial.ErrPredecessorNotCompleted),
			errors.Is(err, partial.ErrSegmentAlreadyAssigned),
			errors.Is(err, partial.ErrSegmentStateChanged),
			errors.Is(err, partial.ErrRelayFull):
			h.log.With(
				logger.NewField("segment_id", segmentID),
				logger.NewField("status", request.Status),
				logger.NewField("error", err),
			).Warn("segment transition rejected")
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromSegment(*segment))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
