package matches_get

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TheRebzu/ecodeli-sub009/internal/dto"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/matching"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
	"github.com/gorilla/mux"
)

// Handler отдает сохраненные совпадения, подбор заново не запускается.
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
	announcementID := mux.Vars(r)["id"]

	results, err := h.service.GetMatches(r.Context(), announcementID)
	if err != nil {
		switch {
		case errors.Is(err, matching.ErrInvalidAnnouncementID):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, matching.ErrAnnouncementNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromMatchResults(announcementID, results))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
