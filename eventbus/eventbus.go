package eventbus

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrDeliveryUnconfirmed 는 메시지가 producer 큐에 들어갔지만 전달 보고 전에 ctx 가 끝났음을 뜻한다.
// 메시지는 나중에 전달될 수 있으므로 DLQ 로 다시 보내지 않는다.
var ErrDeliveryUnconfirmed = errors.New("delivery not confirmed before context ended")

// Topic은 토픽의 기본 이름과 DLQ 토픽 이름을 관리합니다.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// DLQ는 발행에 실패한 이벤트를 보관하는 토픽 이름을 반환합니다 (예: my_topic.dlq).
func (t Topic) DLQ() string {
	return t.base + ".dlq"
}

// Event는 Kafka 메시지의 페이로드로 사용되는 구조체입니다.
type Event struct {
	ID        string          `json:"id"`
	Payload   json.RawMessage `json:"payload"`
	LastError string          `json:"last_error,omitempty"`

	// Type 은 events.EventType 값이며 event_type 헤더로도 실린다.
	Type string `json:"type,omitempty"`

	// Key 는 파티션 키다. 같은 포스트의 이벤트는 같은 파티션으로 간다.
	Key string `json:"-"`
}

// EventBus 인터페이스는 이벤트 발행의 추상화를 정의합니다.
// importer 는 이벤트를 소비하지 않고 발행만 합니다.
type EventBus interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close()
}
