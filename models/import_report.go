package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ImportOutcome string

const (
	OutcomeImported         ImportOutcome = "imported"
	OutcomePostInsertFailed ImportOutcome = "post_insert_failed"
	OutcomeInvalidTimestamp ImportOutcome = "invalid_timestamp"
)

// StepOutcome records one step of a post import.
type StepOutcome struct {
	Name     string `bson:"name" json:"name"`
	Critical bool   `bson:"critical" json:"critical"`
	OK       bool   `bson:"ok" json:"ok"`
	Skipped  bool   `bson:"skipped,omitempty" json:"skipped,omitempty"`
	Error    string `bson:"error,omitempty" json:"error,omitempty"`
}

// ImportReport aggregates every step of a single post import (system monitoring purpose)
// Collection: import_reports
type ImportReport struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	RequestID      string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	PostID         string             `bson:"post_id" json:"post_id"`
	Title          string             `bson:"title" json:"title"`
	Slug           string             `bson:"slug" json:"slug"`
	ExternalAuthor string             `bson:"external_author" json:"external_author"`
	AuthorID       string             `bson:"author_id" json:"author_id"`
	AuthorFallback bool               `bson:"author_fallback" json:"author_fallback"`
	Steps          []StepOutcome      `bson:"steps" json:"steps"`
	Outcome        ImportOutcome      `bson:"outcome" json:"outcome"`
	StartedAt      time.Time          `bson:"started_at" json:"started_at"`
	CompletedAt    time.Time          `bson:"completed_at" json:"completed_at"`
	DurationMs     int64              `bson:"duration_ms" json:"duration_ms"`
}

// FailedSteps returns the names of the steps that errored. Skipped steps are
// not failures.
func (r *ImportReport) FailedSteps() []string {
	var out []string
	for _, s := range r.Steps {
		if !s.OK && !s.Skipped {
			out = append(out, s.Name)
		}
	}
	return out
}

// SkippedSteps returns the names of the steps that had nothing to write,
// such as a tag label with no matching tag.
func (r *ImportReport) SkippedSteps() []string {
	var out []string
	for _, s := range r.Steps {
		if s.Skipped {
			out = append(out, s.Name)
		}
	}
	return out
}
