package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	"wp-importer/db"
	"wp-importer/models"
	"wp-importer/trace"
)

// fakeDB is an in-memory stand-in for the Ghost database. Writes are recorded
// per table; the two lookups read from userMap and tagMap.
type fakeDB struct {
	mu sync.Mutex

	userMap map[string]string
	tagMap  map[string]string

	failExec   map[string]error
	failLookup error
	acquireErr error

	rows     map[string][][]any
	lookups  map[string]int
	acquired int
	released int
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		userMap:  map[string]string{},
		tagMap:   map[string]string{},
		failExec: map[string]error{},
		rows:     map[string][][]any{},
		lookups:  map[string]int{},
	}
}

func (f *fakeDB) Acquire(context.Context) (db.Conn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.acquireErr != nil {
		return nil, f.acquireErr
	}
	f.acquired++
	return f, nil
}

func (f *fakeDB) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released++
	return nil
}

func (f *fakeDB) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	table := tableOf(query)
	if err := f.failExec[table]; err != nil {
		return nil, err
	}
	f.rows[table] = append(f.rows[table], args)
	return driver.RowsAffected(1), nil
}

func (f *fakeDB) GetContext(_ context.Context, dest any, query string, args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var source map[string]string
	switch {
	case strings.Contains(query, "FROM users_migration"):
		source = f.userMap
		f.lookups["users_migration"]++
	case strings.Contains(query, "FROM tags"):
		source = f.tagMap
		f.lookups["tags"]++
	default:
		return errors.New("fakeDB: unexpected query " + query)
	}
	if f.failLookup != nil {
		return f.failLookup
	}

	key, _ := args[0].(string)
	v, ok := source[key]
	if !ok {
		return sql.ErrNoRows
	}
	*dest.(*string) = v
	return nil
}

func (f *fakeDB) count(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows[table])
}

func (f *fakeDB) row(table string, i int) []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[table][i]
}

// tableOf maps a statement to the table it writes. The excerpt update is kept
// apart from the posts insert.
func tableOf(query string) string {
	fields := strings.Fields(query)
	switch {
	case len(fields) >= 3 && fields[0] == "INSERT" && fields[1] == "INTO":
		return fields[2]
	case len(fields) >= 2 && fields[0] == "UPDATE":
		return fields[1] + ":update"
	}
	return query
}

// sinkRecorder keeps every report it receives. When release is set, Record
// blocks until it is closed.
type sinkRecorder struct {
	release chan struct{}

	mu         sync.Mutex
	reports    []models.ImportReport
	ctxErrs    []error
	requestIDs []string
}

func (s *sinkRecorder) Record(ctx context.Context, report models.ImportReport) {
	if s.release != nil {
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	s.requestIDs = append(s.requestIDs, trace.RequestIDFromContext(ctx))
}

func (s *sinkRecorder) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}

type fakeReportRepo struct {
	err     error
	reports []models.ImportReport
}

func (r *fakeReportRepo) Insert(_ context.Context, report models.ImportReport) (*mongo.InsertOneResult, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.reports = append(r.reports, report)
	return &mongo.InsertOneResult{InsertedID: len(r.reports)}, nil
}
