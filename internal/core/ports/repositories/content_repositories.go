package repositories

import (
	"context"
	"time"

	"github.com/clubtreasury/treasury/internal/core/domain"
)

// AnnouncementRepository defines persistence for news posts
type AnnouncementRepository interface {
	SaveAnnouncement(ctx context.Context, a domain.Announcement) error
	FindAnnouncementByID(ctx context.Context, announcementID string) (*domain.Announcement, error)

	// ListAnnouncements lists the newest announcements first. limit <= 0 means all.
	ListAnnouncements(ctx context.Context, limit int) ([]domain.Announcement, error)
	DeleteAnnouncement(ctx context.Context, announcementID string) error

	// ListAnnouncementImageRefs returns every evidence handle used as an announcement image.
	ListAnnouncementImageRefs(ctx context.Context) ([]string, error)
}

// EventRepository defines persistence for calendar events
type EventRepository interface {
	SaveEvent(ctx context.Context, e domain.Event) error
	FindEventByID(ctx context.Context, eventID string) (*domain.Event, error)

	// ListEvents lists all events, latest start first.
	ListEvents(ctx context.Context) ([]domain.Event, error)

	// ListEventsStartingFrom lists events starting at or after from, soonest first. limit <= 0 means all.
	ListEventsStartingFrom(ctx context.Context, from time.Time, limit int) ([]domain.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// ContentRepositoryFacade combines announcement and event persistence
type ContentRepositoryFacade interface {
	AnnouncementRepository
	EventRepository
}
