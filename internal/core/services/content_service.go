package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/google/uuid"
)

const homeFeedSize = 10

type contentService struct {
	BaseService
	contentRepo portsrepo.ContentRepositoryFacade
	evidence    portsrepo.EvidenceStore
}

// NewContentService creates the announcements and events service.
func NewContentService(repo portsrepo.ContentRepositoryFacade, evidence portsrepo.EvidenceStore, opts ...ServiceOption) portssvc.ContentSvcFacade {
	return &contentService{BaseService: newBaseService(opts...), contentRepo: repo, evidence: evidence}
}

func (s *contentService) CreateAnnouncement(ctx context.Context, req dto.CreateAnnouncementRequest, image *dto.Upload) (*domain.Announcement, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", apperrors.ErrValidation)
	}

	a := domain.Announcement{
		AnnouncementID: uuid.NewString(),
		Title:          title,
		Content:        req.Content,
		CreatedAt:      s.Now(),
	}
	if image != nil {
		ref, err := s.evidence.Save(ctx, image.Filename, image.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store announcement image: %w", err)
		}
		a.ImageRef = &ref
	}

	if err := s.contentRepo.SaveAnnouncement(ctx, a); err != nil {
		if a.ImageRef != nil {
			if derr := s.evidence.Delete(ctx, *a.ImageRef); derr != nil {
				s.LogError(ctx, derr, "Failed to remove image of failed announcement")
			}
		}
		s.LogError(ctx, err, "Failed to save announcement")
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	return &a, nil
}

func (s *contentService) ListAnnouncements(ctx context.Context, limit int) ([]domain.Announcement, error) {
	items, err := s.contentRepo.ListAnnouncements(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return items, nil
}

func (s *contentService) DeleteAnnouncement(ctx context.Context, announcementID string) error {
	a, err := s.contentRepo.FindAnnouncementByID(ctx, announcementID)
	if err != nil {
		return fmt.Errorf("failed to find announcement: %w", err)
	}
	if err := s.contentRepo.DeleteAnnouncement(ctx, announcementID); err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if a.ImageRef != nil {
		if err := s.evidence.Delete(ctx, *a.ImageRef); err != nil {
			s.LogError(ctx, err, "Failed to delete announcement image", slog.String("ref", *a.ImageRef))
		}
	}
	return nil
}

func (s *contentService) CreateEvent(ctx context.Context, req dto.CreateEventRequest) (*domain.Event, error) {
	e := domain.Event{
		EventID:     uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		StartAt:     req.StartAt.UTC(),
		EndAt:       req.EndAt.UTC(),
		Location:    strings.TrimSpace(req.Location),
		CreatedAt:   s.Now(),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.contentRepo.SaveEvent(ctx, e); err != nil {
		s.LogError(ctx, err, "Failed to save event")
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &e, nil
}

func (s *contentService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.contentRepo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *contentService) UpcomingEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	events, err := s.contentRepo.ListEventsStartingFrom(ctx, s.Now(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	return events, nil
}

func (s *contentService) DeleteEvent(ctx context.Context, eventID string) error {
	if err := s.contentRepo.DeleteEvent(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func (s *contentService) HomeFeed(ctx context.Context) (*domain.HomeFeed, error) {
	announcements, err := s.ListAnnouncements(ctx, homeFeedSize)
	if err != nil {
		return nil, err
	}
	events, err := s.UpcomingEvents(ctx, homeFeedSize)
	if err != nil {
		return nil, err
	}
	return &domain.HomeFeed{Announcements: announcements, UpcomingEvents: events}, nil
}
