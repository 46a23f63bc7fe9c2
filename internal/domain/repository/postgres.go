package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"amenityfinder/internal/domain/model"
)

// SearchHistoryRepository records completed amenity lookups so past
// searches can be replayed from the UI.
type SearchHistoryRepository struct {
	db *sqlx.DB
}

func NewSearchHistoryRepository(connStr string) (*SearchHistoryRepository, error) {
	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return &SearchHistoryRepository{db: db}, nil
}

func (r *SearchHistoryRepository) SaveSearch(ctx context.Context, rec model.SearchRecord) error {
	const query = `
		INSERT INTO search_history (
			property_id, lat, lon, radius_meters, counts, created_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW()
		)`

	_, err := r.db.ExecContext(ctx, query,
		rec.PropertyID, rec.Lat, rec.Lon, rec.RadiusMeters, rec.Counts,
	)
	if err != nil {
		return fmt.Errorf("failed to insert search record: %w", err)
	}
	return nil
}

func (r *SearchHistoryRepository) RecentSearches(ctx context.Context, limit int) ([]model.SearchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	const query = `
		SELECT
			id,
			property_id,
			lat,
			lon,
			radius_meters,
			counts,
			created_at
		FROM search_history
		ORDER BY created_at DESC
		LIMIT $1`

	var records []model.SearchRecord
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query search history: %w", err)
	}
	return records, nil
}

func (r *SearchHistoryRepository) Close() error {
	return r.db.Close()
}
