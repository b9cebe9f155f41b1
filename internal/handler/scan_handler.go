package handler

import (
	"net/http"
	"strconv"

	"github.com/ecosort/ecosort-backend/internal/dto"
	"github.com/ecosort/ecosort-backend/internal/service"
	"github.com/ecosort/ecosort-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type ScanHandler struct {
	scanService service.ScanService
}

func NewScanHandler(scanService service.ScanService) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
	}
}

func (h *ScanHandler) RecordScan(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.RecordScanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	scan, err := h.scanService.RecordScan(c.Request.Context(), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, scan)
}

func (h *ScanHandler) ListScans(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	scans, err := h.scanService.ListScans(c.Request.Context(), userID, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scans": scans})
}
