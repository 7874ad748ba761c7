package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/secwatch/wafreport/pkg/models/domain"
)

// Store executes the read-only aggregation queries against the appliance
// database and returns generic column/row results. The configured exclusion
// lists are applied to every query that supports them.
type Store struct {
	db           *sql.DB
	exceptAppIDs []string
	exceptIPs    []string
}

// Settings configure the store connection and exclusion lists.
type Settings struct {
	DatabaseURL  string
	ExceptAppIDs []string
	ExceptIPs    []string
}

func NewStore(settings Settings) (*Store, error) {
	if settings.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}
	db, err := sql.Open("postgres", settings.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Store{
		db:           db,
		exceptAppIDs: settings.ExceptAppIDs,
		exceptIPs:    settings.ExceptIPs,
	}, nil
}

// NewStoreWithDB wraps an existing connection. Used by tests.
func NewStoreWithDB(db *sql.DB, exceptAppIDs, exceptIPs []string) *Store {
	return &Store{db: db, exceptAppIDs: exceptAppIDs, exceptIPs: exceptIPs}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Query runs one statement and captures its full result set. The rows handle
// is released on every path. []byte values are normalized to string so
// driver types never leak into rendering.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*domain.QueryResult, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("sql", query).Msg("executing query")

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("sql", query).Msg("query failed")
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		logger.Error().Err(err).Str("sql", query).Msg("read columns failed")
		return nil, fmt.Errorf("read columns: %w", err)
	}

	result := &domain.QueryResult{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			logger.Error().Err(err).Str("sql", query).Msg("scan failed")
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Str("sql", query).Msg("row iteration failed")
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return result, nil
}
