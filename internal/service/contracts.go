package service

import (
	"context"

	"github.com/dayanaadylkhanova/barnum/internal/entity"
)

//go:generate mockgen -source=contracts.go -destination=mock_contracts.go -package=service

// Query is one parameterized read against the analytics warehouse.
type Query struct {
	Name string // endpoint id, used for logs and metrics
	SQL  string
	Args []any
}

// StatsReaderPort runs aggregate reads against the warehouse.
type StatsReaderPort interface {
	Select(ctx context.Context, q Query) ([]entity.Row, error)
}
