package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	PostImported EventType = "post.imported"
)

const (
	SourceImporter = "wp-importer"
	Version        = "1"
)

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// PostImportedEvent 포스트 한 건의 import 처리가 끝났을 때 발행되는 이벤트
// Outcome 이 imported 가 아니면 PostID 는 비어 있을 수 있다.
type PostImportedEvent struct {
	BaseEvent
	RequestID      string   `json:"request_id,omitempty"`
	PostID         string   `json:"post_id,omitempty"`
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	AuthorID       string   `json:"author_id,omitempty"`
	AuthorFallback bool     `json:"author_fallback"`
	Outcome        string   `json:"outcome"`
	FailedSteps    []string `json:"failed_steps"`
	SkippedSteps   []string `json:"skipped_steps"`
	DurationMs     int64    `json:"duration_ms"`
}

// NewBaseEvent 공통 메타데이터를 채운 BaseEvent 를 만든다.
func NewBaseEvent(id string, eventType EventType, at time.Time) BaseEvent {
	return BaseEvent{
		ID:        id,
		Type:      eventType,
		Timestamp: at.UTC(),
		Source:    SourceImporter,
		Version:   Version,
	}
}

// SerializeEvent 이벤트를 JSON으로 직렬화하고 타입 정보 반환
func SerializeEvent(event interface{}) ([]byte, EventType, error) {
	var eventType EventType

	switch e := event.(type) {
	case PostImportedEvent:
		eventType = e.Type
	case *PostImportedEvent:
		eventType = e.Type
	default:
		return nil, "", fmt.Errorf("unknown event type: %T", event)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal event: %w", err)
	}

	return data, eventType, nil
}
