package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
)

// Announcement is a news post shown on the home page.
type Announcement struct {
	AnnouncementID string    `json:"announcementID"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	ImageRef       *string   `json:"imageRef,omitempty"` // Evidence store handle
	CreatedAt      time.Time `json:"createdAt"`
}

// Event is a scheduled club activity.
type Event struct {
	EventID     string    `json:"eventID"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate checks that the event has a title and a forward time range.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: event title is required", apperrors.ErrValidation)
	}
	if !e.StartAt.Before(e.EndAt) {
		return fmt.Errorf("%w: event must start before it ends", apperrors.ErrValidation)
	}
	return nil
}

// HomeFeed is the public landing page content.
type HomeFeed struct {
	Announcements  []Announcement `json:"announcements"`
	UpcomingEvents []Event        `json:"upcomingEvents"`
}
