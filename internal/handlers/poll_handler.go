package handlers

import (
	"net/http"
	"strconv"

	"poll-service/internal/middleware"
	"poll-service/internal/models"
	"poll-service/internal/service"

	"github.com/gin-gonic/gin"
)

type PollHandler struct {
	pollService *service.PollService
}

func NewPollHandler(pollService *service.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

// @Summary Create a new poll
// @Description Create a poll with at least two options
// @Tags polls
// @Accept json
// @Produce json
// @Param request body models.CreatePollRequest true "Create Poll Request"
// @Success 201 {object} models.Poll
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /polls [post]
func (h *PollHandler) CreatePoll(c *gin.Context) {
	user, err := middleware.GetUserFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := h.pollService.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, poll)
}

// @Summary List polls
// @Description Get one page of polls with their options, newest first
// @Tags polls
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {array} models.PollWithOptions
// @Failure 400 {object} map[string]string
// @Router /polls [get]
func (h *PollHandler) ListPolls(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	polls, err := h.pollService.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, polls)
}

// @Summary Get poll detail
// @Description Get a poll with its options and current tally
// @Tags polls
// @Produce json
// @Param id path string true "Poll ID"
// @Success 200 {object} models.PollDetailResponse
// @Failure 404 {object} map[string]string
// @Router /polls/{id} [get]
func (h *PollHandler) GetPoll(c *gin.Context) {
	viewerID := ""
	if user, err := middleware.GetUserFromContext(c.Request.Context()); err == nil {
		viewerID = user.ID
	}

	detail, err := h.pollService.Detail(c.Request.Context(), c.Param("id"), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// @Summary Delete a poll
// @Description Delete a poll and all its options and votes; owner only
// @Tags polls
// @Produce json
// @Param id path string true "Poll ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /polls/{id} [delete]
func (h *PollHandler) DeletePoll(c *gin.Context) {
	user, err := middleware.GetUserFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.pollService.Delete(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
