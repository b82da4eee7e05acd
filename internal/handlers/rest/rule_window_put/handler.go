package rule_window_put

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TheRebzu/ecodeli-sub009/internal/dto"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/availability"
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
	var request dto.RuleWindowRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	window, err := availability.ParseTimeWindow(request.Start, request.End)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ruleID := mux.Vars(r)["id"]
	change, err := h.service.ShiftRuleWindow(r.Context(), ruleID, window, request.ResolveConflicts)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRule),
			errors.Is(err, availability.ErrInvalidTimeOfDay):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, availability.ErrRuleNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, availability.ErrRuleHasFutureBookings):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromRuleChange(change.Rule, change.Conflicts))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
