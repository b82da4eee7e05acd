package kafka

import "strings"

// SplitBrokers разбирает KAFKA_BROKERS вида "host1:9092, host2:9092".
// Пустые элементы отбрасываются.
func SplitBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
