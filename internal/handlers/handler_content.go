package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/clubtreasury/treasury/internal/middleware"
	"github.com/gin-gonic/gin"
)

// contentHandler serves announcements and events.
type contentHandler struct {
	contentService  portssvc.ContentSvcFacade
	evidenceService portssvc.EvidenceSvc
}

// registerPublicContentRoutes registers the home feed, the calendar feed and announcement images.
func registerPublicContentRoutes(rg *gin.RouterGroup, contentService portssvc.ContentSvcFacade, evidenceService portssvc.EvidenceSvc) {
	h := &contentHandler{contentService: contentService, evidenceService: evidenceService}

	rg.GET("/home", h.home)
	rg.GET("/events/feed", h.eventFeed)
	rg.GET("/news/images/:ref", h.announcementImage)
}

// registerContentAdminRoutes registers news and event management under the admin group.
func registerContentAdminRoutes(rg *gin.RouterGroup, contentService portssvc.ContentSvcFacade) {
	h := &contentHandler{contentService: contentService}

	news := rg.Group("/news")
	{
		news.GET("", h.listAnnouncements)
		news.POST("", h.createAnnouncement)
		news.DELETE("/:announcementID", h.deleteAnnouncement)
	}
	events := rg.Group("/events")
	{
		events.GET("", h.listEvents)
		events.POST("", h.createEvent)
		events.DELETE("/:eventID", h.deleteEvent)
	}
}

// home godoc
// @Summary Home feed
// @Description Latest announcements and upcoming events.
// @Tags public
// @Produce json
// @Success 200 {object} domain.HomeFeed
// @Router /home [get]
func (h *contentHandler) home(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	feed, err := h.contentService.HomeFeed(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to load home feed")
		return
	}
	c.JSON(http.StatusOK, feed)
}

// eventFeed godoc
// @Summary Calendar feed
// @Description Every event in the shape expected by the calendar widget.
// @Tags public
// @Produce json
// @Success 200 {object} dto.EventFeedResponse
// @Router /events/feed [get]
func (h *contentHandler) eventFeed(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	events, err := h.contentService.ListEvents(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list events")
		return
	}
	c.JSON(http.StatusOK, dto.ToEventFeedResponse(events))
}

// announcementImage streams an image attached to an announcement. Anything
// else in the evidence store is refused for anonymous callers.
func (h *contentHandler) announcementImage(c *gin.Context) {
	streamEvidence(c, h.evidenceService, "", "")
}

// listAnnouncements godoc
// @Summary List announcements
// @Tags news
// @Produce json
// @Param limit query int false "Maximum posts" default(10)
// @Success 200 {array} domain.Announcement
// @Security BearerAuth
// @Router /admin/news [get]
func (h *contentHandler) listAnnouncements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListContentParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	announcements, err := h.contentService.ListAnnouncements(c.Request.Context(), params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to list announcements")
		return
	}
	c.JSON(http.StatusOK, announcements)
}

// createAnnouncement godoc
// @Summary Post an announcement
// @Tags news
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param content formData string true "Body"
// @Param image formData file false "Optional image"
// @Success 201 {object} domain.Announcement
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/news [post]
func (h *contentHandler) createAnnouncement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	image, closer, err := formUpload(c, "image", false)
	defer closer.Close()
	if err != nil {
		respondError(c, logger, err, "Failed to read image")
		return
	}

	announcement, err := h.contentService.CreateAnnouncement(c.Request.Context(), req, image)
	if err != nil {
		respondError(c, logger, err, "Failed to create announcement")
		return
	}
	logger.Info("Announcement posted", slog.String("announcement_id", announcement.AnnouncementID))
	c.JSON(http.StatusCreated, announcement)
}

// deleteAnnouncement godoc
// @Summary Delete an announcement
// @Tags news
// @Param announcementID path string true "Announcement ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/news/{announcementID} [delete]
func (h *contentHandler) deleteAnnouncement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.contentService.DeleteAnnouncement(c.Request.Context(), c.Param("announcementID")); err != nil {
		respondError(c, logger, err, "Failed to delete announcement")
		return
	}
	c.Status(http.StatusNoContent)
}

// listEvents godoc
// @Summary List events
// @Tags events
// @Produce json
// @Success 200 {array} domain.Event
// @Security BearerAuth
// @Router /admin/events [get]
func (h *contentHandler) listEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	events, err := h.contentService.ListEvents(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list events")
		return
	}
	c.JSON(http.StatusOK, events)
}

// createEvent godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Param event body dto.CreateEventRequest true "Event details"
// @Success 201 {object} domain.Event
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/events [post]
func (h *contentHandler) createEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	event, err := h.contentService.CreateEvent(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create event")
		return
	}
	c.JSON(http.StatusCreated, event)
}

// deleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Param eventID path string true "Event ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/events/{eventID} [delete]
func (h *contentHandler) deleteEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.contentService.DeleteEvent(c.Request.Context(), c.Param("eventID")); err != nil {
		respondError(c, logger, err, "Failed to delete event")
		return
	}
	c.Status(http.StatusNoContent)
}
