package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"wp-importer/config"
	"wp-importer/db"
	"wp-importer/dto"
	"wp-importer/models"
	"wp-importer/trace"
)

// ErrAcquire means no database connection could be obtained for the request.
var ErrAcquire = errors.New("failed to acquire database connection")

// DefaultReportTimeout bounds how long a single sink may take with one report.
const DefaultReportTimeout = 15 * time.Second

// ImportService runs one post import per request on its own connection.
// Reports are handed to the sinks in the background, so a slow or
// unreachable sink never delays the reply.
type ImportService struct {
	pool          db.Acquirer
	importer      *PostImporter
	sinks         []ReportSink
	reportTimeout time.Duration

	pending sync.WaitGroup
}

func NewImportService(pool db.Acquirer, importer *PostImporter, sinks ...ReportSink) *ImportService {
	return &ImportService{
		pool:          pool,
		importer:      importer,
		sinks:         sinks,
		reportTimeout: DefaultReportTimeout,
	}
}

// ImportPost imports req and hands the resulting report to every sink,
// also when the import failed.
func (s *ImportService) ImportPost(ctx context.Context, req dto.PostImportRequest) (*dto.PostReply, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAcquire, err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			config.Logger.Warnf("failed to release connection: %v", cerr)
		}
	}()

	reply, report, err := s.importer.Import(ctx, conn, req)
	if report != nil {
		report.RequestID = trace.RequestIDFromContext(ctx)
		s.record(ctx, *report)
	}
	if err != nil {
		return nil, err
	}
	return reply, nil
}

// record runs every sink on its own goroutine. The sinks get a context that
// survives the end of the request but carries its values.
func (s *ImportService) record(ctx context.Context, report models.ImportReport) {
	detached := context.WithoutCancel(ctx)
	for _, sink := range s.sinks {
		s.pending.Add(1)
		go func(sink ReportSink) {
			defer s.pending.Done()
			sinkCtx, cancel := context.WithTimeout(detached, s.reportTimeout)
			defer cancel()
			sink.Record(sinkCtx, report)
		}(sink)
	}
}

// Wait blocks until every report handed out so far has been recorded.
func (s *ImportService) Wait() {
	s.pending.Wait()
}
