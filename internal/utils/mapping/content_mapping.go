package mapping

import (
	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/clubtreasury/treasury/internal/models"
)

func ToModelAnnouncement(d domain.Announcement) models.Announcement {
	return models.Announcement(d)
}

func ToDomainAnnouncement(m models.Announcement) domain.Announcement {
	return domain.Announcement(m)
}

func ToModelEvent(d domain.Event) models.Event {
	return models.Event(d)
}

func ToDomainEvent(m models.Event) domain.Event {
	return domain.Event(m)
}
