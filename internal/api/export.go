package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homesight/server/internal/database"
	"homesight/server/internal/models"
	"homesight/server/internal/report"
)

// ExportProperty renders the stored analysis as a downloadable
// artifact. Each format shares the same report model, so a failed
// export in one format says nothing about the others.
func (h *Handler) ExportProperty(c *gin.Context) {
	property, err := h.db.GetProperty(userID(c), c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found", "code": "NOT_FOUND"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load property for export")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load property", "code": "INTERNAL"})
		return
	}

	var data models.PropertyData
	if err := json.Unmarshal(property.AnalysisData, &data); err != nil {
		h.logger.WithError(err).Error("Stored analysis data is not decodable")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis data is corrupted", "code": "INTERNAL"})
		return
	}

	format := c.DefaultQuery("format", "pdf")
	var (
		artifact    []byte
		contentType string
		extension   string
		inline      bool
	)
	switch format {
	case "pdf":
		artifact, err = report.RenderPDF(data)
		contentType, extension = "application/pdf", "pdf"
	case "docx":
		artifact, err = report.RenderDOCX(data)
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
		extension = "docx"
	case "txt":
		artifact, err = report.RenderText(data)
		contentType, extension = "text/plain; charset=utf-8", "txt"
	case "html":
		artifact, err = report.RenderHTML(data)
		contentType, extension = "text/html; charset=utf-8", "html"
		inline = true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported format", "code": "INVALID_REQUEST"})
		return
	}

	if errors.Is(err, report.ErrMissingOverview) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Analysis has no property overview to report on",
			"code":  "EXPORT_FAILED",
		})
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("format", format).Error("Export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed", "code": "EXPORT_FAILED"})
		return
	}

	street := ""
	if data.PropertyOverview != nil {
		street = data.PropertyOverview.StreetAddress
	}
	filename := report.FileBase(street) + "." + extension
	if inline {
		c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	} else {
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	c.Data(http.StatusOK, contentType, artifact)
}
