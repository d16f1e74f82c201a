package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/run-trainer/internal/domain"
	"alcyxob/run-trainer/internal/service"
)

type ImportHandler struct {
	importService service.ImportService
}

func NewImportHandler(importService service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportText godoc
// @Summary Import a plain-text weekly schedule into a plan
// @Description Accepts either a JSON body {text, startDate, unit} or a text/plain
// @Description body with start_date and unit query parameters. Every row is
// @Description reported; malformed rows never fail the request.
// @Tags Import
// @Accept json,plain
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} domain.ImportOutcome
// @Failure 403 {object} gin.H "Not the plan owner"
// @Failure 404 {object} gin.H "Plan not found"
// @Router /plans/{planId}/import [post]
func (h *ImportHandler) ImportText(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var text string
	var opts service.ImportOptions
	if c.ContentType() == "text/plain" {
		var q ImportQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			bindingError(c, err)
			return
		}
		// One byte past the limit is enough for the service to reject it.
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, service.MaxScheduleBytes+1))
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Could not read request body")
			return
		}
		text = string(body)
		opts = importOptions(q.StartDate, q.Unit)
	} else {
		var req ImportTextRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindingError(c, err)
			return
		}
		text = req.Text
		opts = importOptions(req.StartDate, req.Unit)
	}

	outcome, err := h.importService.ImportText(c.Request.Context(), actor, c.Param("planId"), text, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// CreateUploadURL godoc
// @Summary Get a presigned URL to upload a schedule document
// @Tags Import
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} domain.ScheduleDocument
// @Failure 503 {object} gin.H "Object storage not configured"
// @Router /plans/{planId}/import/upload-url [post]
func (h *ImportHandler) CreateUploadURL(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	doc, err := h.importService.CreateDocumentUploadURL(c.Request.Context(), actor, c.Param("planId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// ImportDocument godoc
// @Summary Import a previously uploaded schedule document
// @Tags Import
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param document body ImportDocumentRequest true "Object key and options"
// @Success 200 {object} domain.ImportOutcome
// @Router /plans/{planId}/import/document [post]
func (h *ImportHandler) ImportDocument(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req ImportDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	outcome, err := h.importService.ImportDocument(c.Request.Context(), actor, c.Param("planId"), req.ObjectKey, importOptions(req.StartDate, req.Unit))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func importOptions(startDate, unit string) service.ImportOptions {
	opts := service.ImportOptions{Unit: domain.DistanceUnit(unit)}
	if startDate != "" {
		start := parseDate(startDate)
		opts.StartDate = &start
	}
	return opts
}
