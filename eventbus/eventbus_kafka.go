package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"wp-importer/config"
)

const (
	flushTimeoutMs   = 5000
	messageTimeoutMs = 10000
	headerEventID    = "event_id"
	headerEventType  = "event_type"
)

// KafkaEventBus 는 import 결과 이벤트를 발행하는 producer 전용 EventBus 구현체다.
type KafkaEventBus struct {
	producer *kafka.Producer
}

// NewKafkaEventBus 는 멱등 producer 를 만든다. 같은 이벤트가 재전송되어도 한 번만 기록된다.
func NewKafkaEventBus(brokers, clientID string) (*KafkaEventBus, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  brokers,
		"client.id":          clientID,
		"acks":               "all",
		"enable.idempotence": true,
		"message.timeout.ms": messageTimeoutMs,
	})
	if err != nil {
		return nil, fmt.Errorf("kafka producer 생성 실패: %w", err)
	}

	bus := &KafkaEventBus{producer: p}
	go bus.logProducerErrors()
	return bus, nil
}

// logProducerErrors 는 delivery channel 없이 전달된 보고와 클라이언트 오류를 로깅한다.
func (k *KafkaEventBus) logProducerErrors() {
	for e := range k.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				config.ErrorWithFields("kafka delivery failed", config.Fields{
					"topic": *ev.TopicPartition.Topic,
					"error": ev.TopicPartition.Error.Error(),
				})
			}
		case kafka.Error:
			config.ErrorWithFields("kafka client error", config.Fields{
				"code":  ev.Code().String(),
				"error": ev.Error(),
			})
		}
	}
}

// Close 는 남은 메시지를 플러시한 뒤 producer 를 닫는다.
func (k *KafkaEventBus) Close() {
	if k.producer == nil {
		return
	}
	if remaining := k.producer.Flush(flushTimeoutMs); remaining > 0 {
		config.Logger.Warnf("kafka producer closed with %d undelivered events", remaining)
	}
	k.producer.Close()
}

// Publish 는 이벤트를 발행하고 broker 의 전달 보고 또는 ctx 종료를 기다린다.
// 메시지 키는 Event.Key 이며, 비어 있으면 Event.ID 를 쓴다.
func (k *KafkaEventBus) Publish(ctx context.Context, topic string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("이벤트 마샬링 실패: %w", err)
	}

	key := event.Key
	if key == "" {
		key = event.ID
	}

	headers := []kafka.Header{{Key: headerEventID, Value: []byte(event.ID)}}
	if event.Type != "" {
		headers = append(headers, kafka.Header{Key: headerEventType, Value: []byte(event.Type)})
	}

	// buffered: ctx 가 먼저 끝나도 librdkafka 의 보고 전송이 막히지 않는다.
	delivery := make(chan kafka.Event, 1)
	err = k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          data,
		Headers:        headers,
	}, delivery)
	if err != nil {
		return fmt.Errorf("토픽 %s 발행 실패: %w", topic, err)
	}

	select {
	case ev := <-delivery:
		m, ok := ev.(*kafka.Message)
		if !ok {
			return fmt.Errorf("예상하지 못한 전달 보고: %v", ev)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("토픽 %s 전달 실패: %w", topic, m.TopicPartition.Error)
		}
		return nil
	case <-ctx.Done():
		// 이미 큐에 들어간 메시지는 librdkafka 가 계속 전달을 시도한다.
		return fmt.Errorf("토픽 %s: %w: %w", topic, ErrDeliveryUnconfirmed, ctx.Err())
	}
}
