package services

import (
	"context"
	"time"

	"wp-importer/config"
)

// Pinger checks that the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	db      Pinger
	timeout time.Duration
}

func NewHealthService(db Pinger, timeout time.Duration) *HealthService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HealthService{db: db, timeout: timeout}
}

// Check returns nil when SELECT 1 succeeds within the timeout.
func (s *HealthService) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		config.Logger.Errorf("database health check failed: %v", err)
		return err
	}
	return nil
}
