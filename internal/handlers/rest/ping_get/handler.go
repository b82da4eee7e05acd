package ping_get

import (
	"encoding/json"
	"net/http"

	"github.com/TheRebzu/ecodeli-sub009/internal/dto"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
)

const serviceName = "ecodeli-matching"

type Handler struct {
	log   handlerLogger
	clock Clock
}

func New(log handlerLogger, clock Clock) *Handler {
	handlerLog := log.With(logger.NewField("handler", "ping_get"))

	return &Handler{
		log:   handlerLog,
		clock: clock,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := dto.PingResponse{
		Message: "pong",
		Service: serviceName,
		Time:    h.clock.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(res)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
