package dto

import (
	"time"

	"github.com/clubtreasury/treasury/internal/core/domain"
)

// CreateAnnouncementRequest holds the form fields of a news post. An optional
// image arrives as the multipart file "image".
type CreateAnnouncementRequest struct {
	Title   string `form:"title" binding:"required,max=200"`
	Content string `form:"content" binding:"required"`
}

// CreateEventRequest defines a calendar event.
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description"`
	StartAt     time.Time `json:"startAt" binding:"required"`
	EndAt       time.Time `json:"endAt" binding:"required,gtfield=StartAt"`
	Location    string    `json:"location" binding:"max=200"`
}

// ListContentParams bounds announcement and event listings.
type ListContentParams struct {
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}

// EventFeedItem is one event in the public calendar feed.
type EventFeedItem struct {
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// EventFeedResponse is the calendar widget payload.
type EventFeedResponse struct {
	Events []EventFeedItem `json:"events"`
}

// ToEventFeedResponse converts events to calendar feed items with RFC 3339 times.
func ToEventFeedResponse(events []domain.Event) EventFeedResponse {
	items := make([]EventFeedItem, len(events))
	for i, e := range events {
		items[i] = EventFeedItem{
			Title:       e.Title,
			Start:       e.StartAt.Format(time.RFC3339),
			End:         e.EndAt.Format(time.RFC3339),
			Description: e.Description,
			Location:    e.Location,
		}
	}
	return EventFeedResponse{Events: items}
}
