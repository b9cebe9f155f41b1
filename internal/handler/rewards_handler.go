package handler

import (
	"net/http"
	"time"

	"github.com/ecosort/ecosort-backend/internal/service"
	"github.com/ecosort/ecosort-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type RewardsHandler struct {
	progressService    service.ProgressService
	leaderboardService service.LeaderboardService
}

func NewRewardsHandler(progressService service.ProgressService, leaderboardService service.LeaderboardService) *RewardsHandler {
	return &RewardsHandler{
		progressService:    progressService,
		leaderboardService: leaderboardService,
	}
}

func (h *RewardsHandler) GetStats(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	stats, err := h.progressService.GetStats(c.Request.Context(), userID, time.Now())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetBadges and GetMilestones never return an error status: the
// service degrades to zeroed defaults when aggregates fail.
func (h *RewardsHandler) GetBadges(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	badges := h.progressService.GetBadges(c.Request.Context(), userID, time.Now())
	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

func (h *RewardsHandler) GetMilestones(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	milestones := h.progressService.GetMilestones(c.Request.Context(), userID, time.Now())
	c.JSON(http.StatusOK, gin.H{"milestones": milestones})
}

func (h *RewardsHandler) GetLeaderboard(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), time.Now(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *RewardsHandler) RecomputeLeaderboard(c *gin.Context) {
	if _, err := response.GetUserID(c); err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.leaderboardService.RecomputeWeek(c.Request.Context(), time.Now()); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "recomputed"})
}
