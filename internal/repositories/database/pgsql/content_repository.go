package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
	"github.com/clubtreasury/treasury/internal/models"
	"github.com/clubtreasury/treasury/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	announcementColumns = `announcement_id, title, content, image_ref, created_at`
	eventColumns        = `event_id, title, description, start_at, end_at, location, created_at`
)

type PgxContentRepository struct {
	BaseRepository
}

func newPgxContentRepository(db *pgxpool.Pool) portsrepo.ContentRepositoryFacade {
	return &PgxContentRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ContentRepositoryFacade = (*PgxContentRepository)(nil)

func scanAnnouncement(row pgx.Row) (domain.Announcement, error) {
	var m models.Announcement
	if err := row.Scan(&m.AnnouncementID, &m.Title, &m.Content, &m.ImageRef, &m.CreatedAt); err != nil {
		return domain.Announcement{}, err
	}
	return mapping.ToDomainAnnouncement(m), nil
}

func scanEvent(row pgx.Row) (domain.Event, error) {
	var m models.Event
	if err := row.Scan(&m.EventID, &m.Title, &m.Description, &m.StartAt, &m.EndAt, &m.Location, &m.CreatedAt); err != nil {
		return domain.Event{}, err
	}
	return mapping.ToDomainEvent(m), nil
}

func limitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", limit)
}

func (r *PgxContentRepository) SaveAnnouncement(ctx context.Context, a domain.Announcement) error {
	m := mapping.ToModelAnnouncement(a)
	_, err := r.Pool.Exec(ctx, `INSERT INTO announcements (`+announcementColumns+`) VALUES ($1, $2, $3, $4, $5);`,
		m.AnnouncementID, m.Title, m.Content, m.ImageRef, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save announcement: %w", err)
	}
	return nil
}

func (r *PgxContentRepository) FindAnnouncementByID(ctx context.Context, announcementID string) (*domain.Announcement, error) {
	a, err := scanAnnouncement(r.Pool.QueryRow(ctx, `SELECT `+announcementColumns+` FROM announcements WHERE announcement_id = $1;`, announcementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find announcement %s: %w", announcementID, err)
	}
	return &a, nil
}

func (r *PgxContentRepository) ListAnnouncements(ctx context.Context, limit int) ([]domain.Announcement, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+announcementColumns+` FROM announcements ORDER BY created_at DESC`+limitClause(limit)+`;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query announcements: %w", err)
	}
	defer rows.Close()

	out := []domain.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan announcement row: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PgxContentRepository) DeleteAnnouncement(ctx context.Context, announcementID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM announcements WHERE announcement_id = $1;`, announcementID)
	if err != nil {
		return fmt.Errorf("failed to delete announcement %s: %w", announcementID, err)
	}
	return requireAffected(tag)
}

func (r *PgxContentRepository) ListAnnouncementImageRefs(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT image_ref FROM announcements WHERE image_ref IS NOT NULL;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query announcement images: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *PgxContentRepository) SaveEvent(ctx context.Context, e domain.Event) error {
	m := mapping.ToModelEvent(e)
	_, err := r.Pool.Exec(ctx, `INSERT INTO events (`+eventColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		m.EventID, m.Title, m.Description, m.StartAt, m.EndAt, m.Location, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

func (r *PgxContentRepository) FindEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	e, err := scanEvent(r.Pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE event_id = $1;`, eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find event %s: %w", eventID, err)
	}
	return &e, nil
}

func (r *PgxContentRepository) queryEvents(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	out := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PgxContentRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return r.queryEvents(ctx, `SELECT `+eventColumns+` FROM events ORDER BY start_at DESC;`)
}

func (r *PgxContentRepository) ListEventsStartingFrom(ctx context.Context, from time.Time, limit int) ([]domain.Event, error) {
	return r.queryEvents(ctx, `SELECT `+eventColumns+` FROM events WHERE start_at >= $1 ORDER BY start_at ASC`+limitClause(limit)+`;`, from)
}

func (r *PgxContentRepository) DeleteEvent(ctx context.Context, eventID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM events WHERE event_id = $1;`, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	return requireAffected(tag)
}
