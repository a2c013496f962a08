package memory

import (
	"context"
	"sort"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
)

func (s *Store) SaveAnnouncement(_ context.Context, a domain.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.announcements[a.AnnouncementID] = a
	return nil
}

func (s *Store) FindAnnouncementByID(_ context.Context, announcementID string) (*domain.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.announcements[announcementID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (s *Store) ListAnnouncements(_ context.Context, limit int) ([]domain.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Announcement, 0, len(s.announcements))
	for _, a := range s.announcements {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) DeleteAnnouncement(_ context.Context, announcementID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.announcements[announcementID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.announcements, announcementID)
	return nil
}

func (s *Store) ListAnnouncementImageRefs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []string{}
	for _, a := range s.announcements {
		if a.ImageRef != nil {
			out = append(out, *a.ImageRef)
		}
	}
	return out, nil
}

func (s *Store) SaveEvent(_ context.Context, e domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.EventID] = e
	return nil
}

func (s *Store) FindEventByID(_ context.Context, eventID string) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[eventID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (s *Store) ListEvents(_ context.Context) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.After(out[j].StartAt) })
	return out, nil
}

func (s *Store) ListEventsStartingFrom(_ context.Context, from time.Time, limit int) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Event{}
	for _, e := range s.events {
		if !e.StartAt.Before(from) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) DeleteEvent(_ context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[eventID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.events, eventID)
	return nil
}
