package handler

import (
	"net/http"
	"strconv"

	"github.com/ecosort/ecosort-backend/internal/dto"
	"github.com/ecosort/ecosort-backend/internal/service"
	"github.com/ecosort/ecosort-backend/pkg/apperror"
	"github.com/ecosort/ecosort-backend/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CenterHandler struct {
	centerService service.CenterService
}

func NewCenterHandler(centerService service.CenterService) *CenterHandler {
	return &CenterHandler{
		centerService: centerService,
	}
}

func (h *CenterHandler) CreateCenter(c *gin.Context) {
	var input dto.CreateCenterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	center, err := h.centerService.CreateCenter(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, center)
}

func (h *CenterHandler) GetCenter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	center, err := h.centerService.GetCenter(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, center)
}

func (h *CenterHandler) ListCenters(c *gin.Context) {
	centers, err := h.centerService.ListCenters(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"centers": centers})
}

func (h *CenterHandler) SearchCenters(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	centers, err := h.centerService.SearchCenters(c.Request.Context(), query, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"centers": centers})
}
