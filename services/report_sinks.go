package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"wp-importer/config"
	"wp-importer/eventbus"
	"wp-importer/events"
	"wp-importer/idgen"
	"wp-importer/models"
)

// ReportSink receives the ImportReport of every import attempt.
// Sinks are best-effort: they log their own failures and never fail an import.
type ReportSink interface {
	Record(ctx context.Context, report models.ImportReport)
}

// ReportStore persists import reports.
type ReportStore interface {
	Insert(ctx context.Context, report models.ImportReport) (*mongo.InsertOneResult, error)
}

// MongoReportSink stores reports in the import_reports collection.
type MongoReportSink struct {
	repo ReportStore
}

func NewMongoReportSink(repo ReportStore) *MongoReportSink {
	return &MongoReportSink{repo: repo}
}

func (s *MongoReportSink) Record(ctx context.Context, report models.ImportReport) {
	if _, err := s.repo.Insert(ctx, report); err != nil {
		config.ErrorWithFields("failed to store import report", config.Fields{
			"post_id": report.PostID,
			"outcome": string(report.Outcome),
			"error":   err.Error(),
		})
	}
}

// EventReportSink publishes a post.imported event per report.
type EventReportSink struct {
	bus   eventbus.EventBus
	topic eventbus.Topic
	now   func() time.Time
}

func NewEventReportSink(bus eventbus.EventBus, topic eventbus.Topic) *EventReportSink {
	return &EventReportSink{bus: bus, topic: topic, now: time.Now}
}

func (s *EventReportSink) Record(ctx context.Context, report models.ImportReport) {
	evt := events.PostImportedEvent{
		BaseEvent:      events.NewBaseEvent(idgen.New(), events.PostImported, s.now()),
		RequestID:      report.RequestID,
		Slug:           report.Slug,
		Title:          report.Title,
		AuthorID:       report.AuthorID,
		AuthorFallback: report.AuthorFallback,
		Outcome:        string(report.Outcome),
		FailedSteps:    nonNil(report.FailedSteps()),
		SkippedSteps:   nonNil(report.SkippedSteps()),
		DurationMs:     report.DurationMs,
	}
	if report.Outcome != models.OutcomePostInsertFailed {
		evt.PostID = report.PostID
	}

	data, eventType, err := events.SerializeEvent(evt)
	if err != nil {
		config.ErrorWithFields("failed to encode post.imported event", config.Fields{"post_id": report.PostID, "error": err.Error()})
		return
	}
	msg := eventbus.Event{
		ID:      evt.ID,
		Type:    string(eventType),
		Key:     report.Slug,
		Payload: data,
	}
	if err := eventbus.PublishWithDLQ(ctx, s.bus, s.topic, msg); err != nil {
		config.ErrorWithFields("failed to publish post.imported event", config.Fields{
			"post_id": report.PostID,
			"topic":   s.topic.Base(),
			"error":   err.Error(),
		})
	}
}

func nonNil(steps []string) []string {
	if steps == nil {
		return []string{}
	}
	return steps
}
