package metrics

import "github.com/TheRebzu/ecodeli-sub009/pkg/logger"

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
}
