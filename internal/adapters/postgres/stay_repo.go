package postgres

import (
	"context"

	"github.com/smartstay/navigator/internal/core/domain"
)

// StayRepo implements ports.StayRepository with pgx.
type StayRepo struct {
	db *DB
}

// NewStayRepo creates a new StayRepo.
func NewStayRepo(db *DB) *StayRepo {
	return &StayRepo{db: db}
}

// Create inserts a stay. Location is optional; listings without coordinates
// simply never match distance filters.
func (r *StayRepo) Create(ctx context.Context, s *domain.Stay) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO stays (name, address, location, price_per_night, rating, description, amenities, contact)
		VALUES ($1, $2,
		        CASE WHEN $3::float8 IS NULL THEN NULL
		             ELSE ST_SetSRID(ST_MakePoint($4, $3), 4326)::geography END,
		        $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, s.Name, s.Address, latOf(s.Location), lonOf(s.Location),
		s.PricePerNight, s.Rating, s.Description, s.Amenities, s.Contact,
	).Scan(&s.ID, &s.CreatedAt)
}

// GetByID returns a stay by UUID.
func (r *StayRepo) GetByID(ctx context.Context, id string) (*domain.Stay, error) {
	var s domain.Stay
	var lat, lon *float64
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(address, ''),
		       ST_Y(location::geometry), ST_X(location::geometry),
		       price_per_night, rating, COALESCE(description, ''),
		       COALESCE(amenities, ''), COALESCE(contact, ''), created_at
		FROM stays WHERE id = $1
	`, id).Scan(
		&s.ID, &s.Name, &s.Address, &lat, &lon,
		&s.PricePerNight, &s.Rating, &s.Description, &s.Amenities, &s.Contact, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Location = pointOf(lat, lon)
	return &s, nil
}

// List returns all stays, newest first.
func (r *StayRepo) List(ctx context.Context) ([]domain.Stay, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, COALESCE(address, ''),
		       ST_Y(location::geometry), ST_X(location::geometry),
		       price_per_night, rating, COALESCE(description, ''),
		       COALESCE(amenities, ''), COALESCE(contact, ''), created_at
		FROM stays
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stays []domain.Stay
	for rows.Next() {
		var s domain.Stay
		var lat, lon *float64
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Address, &lat, &lon,
			&s.PricePerNight, &s.Rating, &s.Description, &s.Amenities, &s.Contact, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		s.Location = pointOf(lat, lon)
		stays = append(stays, s)
	}
	return stays, rows.Err()
}

func latOf(p *domain.GeoPoint) *float64 {
	if p == nil {
		return nil
	}
	return &p.Lat
}

func lonOf(p *domain.GeoPoint) *float64 {
	if p == nil {
		return nil
	}
	return &p.Lon
}

func pointOf(lat, lon *float64) *domain.GeoPoint {
	if lat == nil || lon == nil {
		return nil
	}
	return &domain.GeoPoint{Lat: *lat, Lon: *lon}
}
