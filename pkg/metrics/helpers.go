package metrics

import (
	"time"
)

type RedisOperation string

const (
	RedisOpGet RedisOperation = "get"
	RedisOpSet RedisOperation = "set"
	RedisOpDel RedisOperation = "del"
)

// ObserveRedis фиксирует длительность операции с Redis и ошибку, если она была
func ObserveRedis(service string, op RedisOperation, start time.Time, err error) {
	RedisOperationDuration.WithLabelValues(service, string(op)).Observe(time.Since(start).Seconds())
	if err != nil {
		RedisErrors.WithLabelValues(service, string(op)).Inc()
	}
}

// RecordCacheLookup учитывает попадание или промах кеша по префиксу ключа
func RecordCacheLookup(service, keyPrefix string, hit bool) {
	if hit {
		RedisCacheHits.WithLabelValues(service, keyPrefix).Inc()
		return
	}
	RedisCacheMisses.WithLabelValues(service, keyPrefix).Inc()
}

// ObserveKafkaProduce учитывает отправку события: длительность только для успешных
func ObserveKafkaProduce(service, topic string, start time.Time, err error) {
	if err != nil {
		KafkaErrors.WithLabelValues(service, topic, "produce").Inc()
		return
	}
	KafkaMessagesProduced.WithLabelValues(service, topic).Inc()
	KafkaProduceDuration.WithLabelValues(service, topic).Observe(time.Since(start).Seconds())
}

type DbOperation string

const (
	DbOpSelect DbOperation = "select"
	DbOpInsert DbOperation = "insert"
	DbOpUpdate DbOperation = "update"
	DbOpDelete DbOperation = "delete"
)

type DbTimer struct {
	service   string
	operation DbOperation
	table     string
	start     time.Time
}

func NewDbTimer(service string, op DbOperation, table string) *DbTimer {
	return &DbTimer{
		service:   service,
		operation: op,
		table:     table,
		start:     time.Now(),
	}
}

func (dt *DbTimer) ObserveDuration() {
	duration := time.Since(dt.start).Seconds()
	DbQueryDuration.WithLabelValues(dt.service, string(dt.operation), dt.table).Observe(duration)
}

func RecordDbError(service string, op DbOperation) {
	DbErrors.WithLabelValues(service, string(op)).Inc()
}

// RecordMutation учитывает результат изменения каталога
func RecordMutation(operation, result string) {
	CatalogMutations.WithLabelValues(operation, result).Inc()
}
