package availability_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/dto"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/availability"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
	"github.com/gorilla/mux"
)

type Handler struct {
	log      handlerLogger
	service  Service
	location *time.Location
}

// New принимает часовой пояс календаря: даты from/to трактуются в нем.
func New(log handlerLogger, service Service, location *time.Location) *Handler {
	handlerLog := log.With()
	if location == nil {
		location = time.UTC
	}

	return &Handler{
		log:      handlerLog,
		service:  service,
		location: location,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	slots, err := h.service.ExpandAvailability(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidProviderID),
			errors.Is(err, availability.ErrInvalidRange),
			errors.Is(err, availability.ErrInvalidDuration):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, availability.ErrInvalidRule),
			errors.Is(err, availability.ErrInvalidException),
			errors.Is(err, availability.ErrInvalidTimeOfDay):
			// сохраненные данные провайдера некорректны
			h.log.With(
				logger.NewField("provider_id", query.ProviderID),
				logger.NewField("error", err),
			).Error("expand availability")
			w.WriteHeader(http.StatusUnprocessableEntity)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromSlots(query.ProviderID, slots))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func (h *Handler) parseQuery(r *http.Request) (availability.Query, bool) {
	values := r.URL.Query()

	from, err := time.ParseInLocation(time.DateOnly, values.Get("from"), h.location)
	if err != nil {
		return availability.Query{}, false
	}
	to, err := time.ParseInLocation(time.DateOnly, values.Get("to"), h.location)
	if err != nil {
		return availability.Query{}, false
	}

	var duration time.Duration
	if raw := values.Get("duration"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return availability.Query{}, false
		}
		duration = time.Duration(minutes) * time.Minute
	}

	return availability.Query{
		ProviderID: mux.Vars(r)["id"],
		From:       from,
		To:         to,
		ServiceID:  values.Get("service_id"),
		Duration:   duration,
	}, true
}
