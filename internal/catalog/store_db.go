package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 5 * time.Second
)

// PostgresLoader reads the catalog from the yachts table once at startup.
// Descriptive fields live in a jsonb column so the table tracks the feed
// without a migration per field.
type PostgresLoader struct {
	db *sql.DB
}

func NewPostgresLoader(db *sql.DB) *PostgresLoader {
	return &PostgresLoader{db: db}
}

func (l *PostgresLoader) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return l.db.PingContext(ctx)
	})
}

func (l *PostgresLoader) Load(ctx context.Context) (*MemStore, error) {
	var out []Yacht

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := l.db.QueryContext(ctx, `
			SELECT id, name, yacht_type, price, price_currency, length_m, year_built,
			       status, featured, details
			FROM yachts
			ORDER BY position ASC, id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Yacht, 0, 64)
		for rows.Next() {
			var (
				col     Yacht
				price   sql.NullFloat64
				details []byte
			)
			if err := rows.Scan(&col.ID, &col.Name, &col.Category, &price, &col.Currency,
				&col.LengthM, &col.YearBuilt, &col.Status, &col.Featured, &details); err != nil {
				return err
			}

			var y Yacht
			if len(details) > 0 {
				if err := json.Unmarshal(details, &y); err != nil {
					return err
				}
			}
			// Columns win over whatever the details blob carries.
			y.ID, y.Name, y.Category, y.Currency = col.ID, col.Name, col.Category, col.Currency
			y.LengthM, y.YearBuilt, y.Status, y.Featured = col.LengthM, col.YearBuilt, col.Status, col.Featured
			y.Price = nil
			if price.Valid {
				p := price.Float64
				y.Price = &p
			}
			out = append(out, y)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return NewMemStore(out)
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
