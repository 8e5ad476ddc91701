package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/dayanaadylkhanova/barnum/internal/entity"
	"github.com/dayanaadylkhanova/barnum/internal/metrics"
	"github.com/dayanaadylkhanova/barnum/internal/service"
)

const breakerName = "warehouse"

// querier is the subset of *pgxpool.Pool the store reads through.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
	Close()
}

type Store struct {
	db  querier
	log *zap.Logger
	cb  *gobreaker.CircuitBreaker[[]entity.Row]
}

// New opens a read-only pool on the analytics warehouse. searchPath is set on
// every connection so queries use unqualified table names.
func New(ctx context.Context, dsn, searchPath string, log *zap.Logger) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if searchPath != "" {
		cfg.ConnConfig.RuntimeParams["search_path"] = searchPath
	}
	cfg.ConnConfig.RuntimeParams["default_transaction_read_only"] = "on"
	cfg.ConnConfig.RuntimeParams["application_name"] = "barnum"

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return newStore(pool, log), nil
}

func newStore(db querier, log *zap.Logger) *Store {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	cb := gobreaker.NewCircuitBreaker[[]entity.Row](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
		// A cancelled request says nothing about the warehouse.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
	return &Store{db: db, log: log, cb: cb}
}

// Ping checks that the warehouse answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Select implements service.StatsReaderPort
func (s *Store) Select(ctx context.Context, q service.Query) ([]entity.Row, error) {
	start := time.Now()
	out, err := s.cb.Execute(func() ([]entity.Row, error) {
		return s.selectRows(ctx, q)
	})
	metrics.RecordQuery(q.Name, time.Since(start), len(out), err)
	if err != nil {
		s.log.Debug("query failed", zap.String("endpoint", q.Name), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (s *Store) selectRows(ctx context.Context, q service.Query) ([]entity.Row, error) {
	rows, err := s.db.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := []entity.Row{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(entity.Row, len(fields))
		for i, f := range fields {
			row[f.Name] = normalizeValue(f.DataTypeOID, values[i])
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) Close() { s.db.Close() }

func stateValue(st gobreaker.State) float64 {
	switch st {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
