package rule_delete

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/TheRebzu/ecodeli-sub009/internal/dto"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/availability"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
	"github.com/gorilla/mux"
)

// Handler мягко выключает правило доступности. Правило остается в базе,
// пока на него ссылаются бронирования.
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
	ruleID := mux.Vars(r)["id"]

	resolveConflicts := false
	if raw := r.URL.Query().Get("resolve_conflicts"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		resolveConflicts = parsed
	}

	change, err := h.service.DeactivateRule(r.Context(), ruleID, resolveConflicts)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRule):
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

	h.log.With(
		logger.NewField("rule_id", ruleID),
		logger.NewField("conflicts", len(change.Conflicts)),
	).Info("availability rule deactivated")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromRuleChange(change.Rule, change.Conflicts))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
