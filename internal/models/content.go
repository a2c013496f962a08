package models

import "time"

// Announcement is a row of the announcements table.
type Announcement struct {
	AnnouncementID string    `db:"announcement_id"`
	Title          string    `db:"title"`
	Content        string    `db:"content"`
	ImageRef       *string   `db:"image_ref"`
	CreatedAt      time.Time `db:"created_at"`
}

// Event is a row of the events table.
type Event struct {
	EventID     string    `db:"event_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	StartAt     time.Time `db:"start_at"`
	EndAt       time.Time `db:"end_at"`
	Location    string    `db:"location"`
	CreatedAt   time.Time `db:"created_at"`
}
