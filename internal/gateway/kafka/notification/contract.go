//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notification_test
package notification

import (
	"time"

	"github.com/IBM/sarama"
)

// producer - подмножество sarama.SyncProducer, которое использует шлюз.
type producer interface {
	SendMessage(msg *sarama.ProducerMessage) (partition int32, offset int64, err error)
}

type clock interface {
	Now() time.Time
}
