package postgres

import (
	"context"

	"github.com/smartstay/navigator/internal/core/domain"
)

// EventRepo implements ports.EventRepository with pgx.
type EventRepo struct {
	db *DB
}

// NewEventRepo creates a new EventRepo.
func NewEventRepo(db *DB) *EventRepo {
	return &EventRepo{db: db}
}

const eventColumns = `
	id, title, COALESCE(description, ''), COALESCE(location_text, ''),
	ST_Y(location::geometry), ST_X(location::geometry),
	date, COALESCE(contact, ''), COALESCE(tags, ''),
	COALESCE(organizer, ''), COALESCE(created_by, ''),
	visibility_radius_km, interested_count, created_at`

// Create inserts an event.
func (r *EventRepo) Create(ctx context.Context, e *domain.Event) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO events (title, description, location_text, location, date,
		                    contact, tags, organizer, created_by, visibility_radius_km)
		VALUES ($1, $2, $3,
		        CASE WHEN $4::float8 IS NULL THEN NULL
		             ELSE ST_SetSRID(ST_MakePoint($5, $4), 4326)::geography END,
		        $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`, e.Title, e.Description, e.LocationText, latOf(e.Location), lonOf(e.Location),
		e.Date, e.Contact, e.Tags, e.Organizer, e.CreatedBy, e.VisibilityRadiusKm,
	).Scan(&e.ID, &e.CreatedAt)
}

// GetByID returns an event by UUID, without its comments.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT`+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List returns all events, newest first.
func (r *EventRepo) List(ctx context.Context) ([]domain.Event, error) {
	return r.queryEvents(ctx, `SELECT`+eventColumns+` FROM events ORDER BY created_at DESC`)
}

// ListUpcoming returns events dated today or later, soonest first.
// A limit <= 0 means unlimited.
func (r *EventRepo) ListUpcoming(ctx context.Context, limit int) ([]domain.Event, error) {
	return r.queryEvents(ctx, `
		SELECT`+eventColumns+`
		FROM events
		WHERE date >= CURRENT_DATE
		ORDER BY date
		LIMIT CASE WHEN $1 <= 0 THEN NULL ELSE $1 END
	`, limit)
}

// ListUpcomingNear returns upcoming events whose own visibility radius covers
// the given coordinate. ST_DWithin is a prefilter over the GIST index; the
// service re-checks the exact radii.
func (r *EventRepo) ListUpcomingNear(ctx context.Context, lat, lon float64, limit int) ([]domain.Event, error) {
	return r.queryEvents(ctx, `
		SELECT`+eventColumns+`
		FROM events
		WHERE date >= CURRENT_DATE
		  AND location IS NOT NULL
		  AND ST_DWithin(location, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography,
		                 visibility_radius_km * 1000)
		ORDER BY date
		LIMIT CASE WHEN $3 <= 0 THEN NULL ELSE $3 END
	`, lat, lon, limit)
}

// ListByTag returns upcoming events whose tags contain the given fragment.
func (r *EventRepo) ListByTag(ctx context.Context, tag string, limit int) ([]domain.Event, error) {
	return r.queryEvents(ctx, `
		SELECT`+eventColumns+`
		FROM events
		WHERE date >= CURRENT_DATE AND tags ILIKE '%' || $1 || '%'
		ORDER BY date
		LIMIT CASE WHEN $2 <= 0 THEN NULL ELSE $2 END
	`, tag, limit)
}

// IncrementInterest bumps the interest counter and returns the new count.
func (r *EventRepo) IncrementInterest(ctx context.Context, id string) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `
		UPDATE events SET interested_count = interested_count + 1
		WHERE id = $1
		RETURNING interested_count
	`, id).Scan(&count)
	return count, err
}

// AddComment appends a comment to an event's thread.
func (r *EventRepo) AddComment(ctx context.Context, c *domain.EventComment) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO event_comments (event_id, author, comment)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, c.EventID, c.Author, c.Comment).Scan(&c.ID, &c.CreatedAt)
}

// GetComments returns an event's comments, oldest first.
func (r *EventRepo) GetComments(ctx context.Context, eventID string) ([]domain.EventComment, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, event_id, COALESCE(author, ''), comment, created_at
		FROM event_comments
		WHERE event_id = $1
		ORDER BY created_at
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.EventComment
	for rows.Next() {
		var c domain.EventComment
		if err := rows.Scan(&c.ID, &c.EventID, &c.Author, &c.Comment, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var e domain.Event
	var lat, lon *float64
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.LocationText, &lat, &lon,
		&e.Date, &e.Contact, &e.Tags, &e.Organizer, &e.CreatedBy,
		&e.VisibilityRadiusKm, &e.InterestedCount, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Location = pointOf(lat, lon)
	return &e, nil
}

func (r *EventRepo) queryEvents(ctx context.Context, sql string, args ...any) ([]domain.Event, error) {
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}
