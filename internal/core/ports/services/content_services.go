package services

import (
	"context"

	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/clubtreasury/treasury/internal/dto"
)

// AnnouncementSvc defines operations on news posts
type AnnouncementSvc interface {
	CreateAnnouncement(ctx context.Context, req dto.CreateAnnouncementRequest, image *dto.Upload) (*domain.Announcement, error)
	ListAnnouncements(ctx context.Context, limit int) ([]domain.Announcement, error)
	DeleteAnnouncement(ctx context.Context, announcementID string) error
}

// EventSvc defines operations on calendar events
type EventSvc interface {
	CreateEvent(ctx context.Context, req dto.CreateEventRequest) (*domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	UpcomingEvents(ctx context.Context, limit int) ([]domain.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// ContentSvcFacade combines announcements, events and the public home feed
type ContentSvcFacade interface {
	AnnouncementSvc
	EventSvc

	// HomeFeed returns the latest announcements and upcoming events.
	HomeFeed(ctx context.Context) (*domain.HomeFeed, error)
}
