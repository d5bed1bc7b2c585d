package postgres

import (
	"context"

	"github.com/smartstay/navigator/internal/core/domain"
)

// SpotRepo implements ports.SpotRepository with pgx.
type SpotRepo struct {
	db *DB
}

// NewSpotRepo creates a new SpotRepo.
func NewSpotRepo(db *DB) *SpotRepo {
	return &SpotRepo{db: db}
}

// Create inserts a tourist spot.
func (r *SpotRepo) Create(ctx context.Context, s *domain.TouristSpot) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO tourist_spots (name, location, description, category, image_url, rating)
		VALUES ($1,
		        CASE WHEN $2::float8 IS NULL THEN NULL
		             ELSE ST_SetSRID(ST_MakePoint($3, $2), 4326)::geography END,
		        $4, $5, $6, $7)
		RETURNING id, created_at
	`, s.Name, latOf(s.Location), lonOf(s.Location),
		s.Description, s.Category, s.ImageURL, s.Rating,
	).Scan(&s.ID, &s.CreatedAt)
}

// GetByID returns a spot by UUID.
func (r *SpotRepo) GetByID(ctx context.Context, id string) (*domain.TouristSpot, error) {
	var s domain.TouristSpot
	var lat, lon *float64
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, ST_Y(location::geometry), ST_X(location::geometry),
		       COALESCE(description, ''), COALESCE(category, ''),
		       COALESCE(image_url, ''), rating, created_at
		FROM tourist_spots WHERE id = $1
	`, id).Scan(
		&s.ID, &s.Name, &lat, &lon,
		&s.Description, &s.Category, &s.ImageURL, &s.Rating, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Location = pointOf(lat, lon)
	return &s, nil
}

// List returns spots, optionally restricted to a category.
func (r *SpotRepo) List(ctx context.Context, category string) ([]domain.TouristSpot, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, ST_Y(location::geometry), ST_X(location::geometry),
		       COALESCE(description, ''), COALESCE(category, ''),
		       COALESCE(image_url, ''), rating, created_at
		FROM tourist_spots
		WHERE ($1 = '' OR category = $1)
		ORDER BY rating DESC, name
	`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spots []domain.TouristSpot
	for rows.Next() {
		var s domain.TouristSpot
		var lat, lon *float64
		if err := rows.Scan(
			&s.ID, &s.Name, &lat, &lon,
			&s.Description, &s.Category, &s.ImageURL, &s.Rating, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		s.Location = pointOf(lat, lon)
		spots = append(spots, s)
	}
	return spots, rows.Err()
}
