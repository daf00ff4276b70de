package handlers

import (
	"net/http"

	"poll-service/internal/middleware"
	"poll-service/internal/models"
	"poll-service/internal/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	voteService *service.VoteService
}

func NewVoteHandler(voteService *service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// @Summary Cast a vote
// @Description Vote for an option; a repeat vote moves the voter's choice
// @Tags votes
// @Accept json
// @Produce json
// @Param id path string true "Poll ID"
// @Param request body models.CastVoteRequest true "Vote Request"
// @Success 200 {object} models.CastVoteResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /polls/{id}/vote [post]
func (h *VoteHandler) CastVote(c *gin.Context) {
	user, err := middleware.GetUserFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.voteService.CastVote(c.Request.Context(), c.Param("id"), req.OptionID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
