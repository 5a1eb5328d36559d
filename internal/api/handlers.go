package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"homesight/server/internal/analysis"
	"homesight/server/internal/assembler"
	"homesight/server/internal/database"
	"homesight/server/internal/geocoding"
	"homesight/server/internal/models"
	"homesight/server/internal/storage"
)

type Handler struct {
	db        *database.Database
	logger    *logrus.Logger
	client    *analysis.Client
	assembler *assembler.Assembler
	store     *storage.Store
	geocoder  *geocoding.Geocoder
}

type AnalyzeRequest struct {
	Address string `json:"address" binding:"required"`
}

type FavoriteRequest struct {
	IsFavorite *bool `json:"is_favorite" binding:"required"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type DeleteImagesRequest struct {
	ImageIDs []string `json:"image_ids" binding:"required"`
}

func NewHandler(db *database.Database, client *analysis.Client, store *storage.Store, geocoder *geocoding.Geocoder, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Handler{
		db:        db,
		logger:    logger,
		client:    client,
		assembler: assembler.New(logger),
		store:     store,
		geocoder:  geocoder,
	}
}

// userID reads the identity forwarded by the auth proxy. Requests
// without one are rejected before any handler logic runs.
func userID(c *gin.Context) string {
	return c.GetHeader("X-User-ID")
}

// RequireUser aborts requests that carry no forwarded identity.
func (h *Handler) RequireUser(c *gin.Context) {
	if userID(c) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Missing user identity",
			"code":  "UNAUTHORIZED",
		})
		return
	}
	c.Next()
}

// AnalyzeProperty runs the full pipeline for an address: webhook call,
// normalization, assembly and persistence. Repeated analyses of the
// same address update the stored row through the unique index.
func (h *Handler) AnalyzeProperty(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Address is required", "code": "INVALID_ADDRESS"})
		return
	}

	response, err := h.client.Analyze(c.Request.Context(), req.Address)
	if err != nil {
		var analysisErr *analysis.Error
		if errors.As(err, &analysisErr) {
			c.JSON(analysisErr.HTTPStatus(), gin.H{
				"error": analysisErr.Message,
				"code":  string(analysisErr.Code),
			})
			return
		}
		h.logger.WithError(err).Error("Analysis failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Analysis failed", "code": "WEBHOOK_ERROR"})
		return
	}

	data := h.assembler.Assemble(response)
	h.fillCoordinates(&data)

	blob, err := json.Marshal(data)
	if err != nil {
		h.logger.WithError(err).Error("Failed to encode analysis data")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode analysis", "code": "INTERNAL"})
		return
	}

	property := &models.Property{
		UserID:       userID(c),
		Address:      req.Address,
		AnalysisData: datatypes.JSON(blob),
	}
	if err := h.db.UpsertProperty(property); err != nil {
		h.logger.WithError(err).Error("Failed to store property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store property", "code": "INTERNAL"})
		return
	}

	c.JSON(http.StatusOK, property)
}

// fillCoordinates geocodes the subject address when the raw payload
// carried no coordinates. Best effort only; failures are logged.
func (h *Handler) fillCoordinates(data *models.PropertyData) {
	o := data.PropertyOverview
	if h.geocoder == nil || o == nil || o.StreetAddress == "" {
		return
	}
	if o.Latitude != nil && o.Longitude != nil {
		return
	}
	lat, lon, err := h.geocoder.GeocodeAddress(o.StreetAddress, o.City, o.State, o.ZipCode)
	if err != nil {
		h.logger.WithError(err).Debug("Could not geocode subject property")
		return
	}
	o.Latitude = &lat
	o.Longitude = &lon
}

func (h *Handler) ListProperties(c *gin.Context) {
	favoritesOnly := c.Query("favorites") == "true"
	properties, err := h.db.ListProperties(userID(c), favoritesOnly)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list properties", "code": "INTERNAL"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

func (h *Handler) GetProperty(c *gin.Context) {
	property, err := h.db.GetProperty(userID(c), c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found", "code": "NOT_FOUND"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property", "code": "INTERNAL"})
		return
	}
	c.JSON(http.StatusOK, property)
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	images, err := h.db.DeleteProperty(userID(c), c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found", "code": "NOT_FOUND"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property", "code": "INTERNAL"})
		return
	}

	// Blob cleanup is best effort; the rows are already gone.
	keys := make([]string, 0, len(images))
	for _, img := range images {
		keys = append(keys, img.FileName)
	}
	if len(keys) > 0 {
		h.store.DeleteBatch(keys)
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) SetFavorite(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_favorite is required", "code": "INVALID_REQUEST"})
		return
	}
	err := h.db.SetFavorite(userID(c), c.Param("id"), *req.IsFavorite)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found", "code": "NOT_FOUND"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to update favorite")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update favorite", "code": "INTERNAL"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *Handler) SetStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required", "code": "INVALID_REQUEST"})
		return
	}
	err := h.db.SetStatus(userID(c), c.Param("id"), req.Status)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found", "code": "NOT_FOUND"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to update status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status", "code": "INTERNAL"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// UploadImages stores a multipart batch of images. Items succeed or
// fail individually; one bad file never sinks the rest of the batch.
func (h *Handler) UploadImages(c *gin.Context) {
	property, err := h.db.GetProperty(userID(c), c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found", "code": "NOT_FOUND"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load property for upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load property", "code": "INTERNAL"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No images supplied", "code": "INVALID_REQUEST"})
		return
	}

	var uploads []storage.Upload
	for _, fh := range form.File["images"] {
		f, err := fh.Open()
		if err != nil {
			uploads = append(uploads, storage.Upload{FileName: fh.Filename})
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			uploads = append(uploads, storage.Upload{FileName: fh.Filename})
			continue
		}
		uploads = append(uploads, storage.Upload{FileName: fh.Filename, Data: data})
	}

	results := h.store.SaveBatch(property.ID, uploads)
	for i, res := range results {
		if res.Error != "" {
			continue
		}
		image := &models.PropertyImage{
			PropertyID: property.ID,
			FileName:   res.Key,
			URL:        res.URL,
			SortOrder:  i,
		}
		if err := h.db.AddImage(image); err != nil {
			h.logger.WithError(err).WithField("file", res.FileName).Error("Failed to record image")
			results[i].Error = "failed to record image"
		}
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *Handler) ListImages(c *gin.Context) {
	property, err := h.db.GetProperty(userID(c), c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found", "code": "NOT_FOUND"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load property", "code": "INTERNAL"})
		return
	}
	images, err := h.db.ListImages(property.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list images")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list images", "code": "INTERNAL"})
		return
	}
	c.JSON(http.StatusOK, images)
}

// DeleteImages removes a batch of images with per-item outcomes. A
// failed item is reported, not retried, and successes are never rolled
// back on its account.
func (h *Handler) DeleteImages(c *gin.Context) {
	property, err := h.db.GetProperty(userID(c), c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found", "code": "NOT_FOUND"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load property", "code": "INTERNAL"})
		return
	}

	var req DeleteImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.ImageIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_ids is required", "code": "INVALID_REQUEST"})
		return
	}

	results := make([]storage.ItemResult, len(req.ImageIDs))
	for i, imageID := range req.ImageIDs {
		results[i] = h.deleteOneImage(property.ID, imageID)
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *Handler) deleteOneImage(propertyID, imageID string) storage.ItemResult {
	result := storage.ItemResult{FileName: imageID}

	image, err := h.db.GetImage(imageID)
	if err != nil || image.PropertyID != propertyID {
		result.Error = "image not found"
		return result
	}

	if err := h.store.Delete(image.FileName); err != nil {
		h.logger.WithError(err).WithField("image_id", imageID).Error("Failed to delete image blob")
		result.Error = err.Error()
		return result
	}
	if err := h.db.DeleteImage(imageID); err != nil {
		result.Error = "failed to delete image record"
		return result
	}
	result.Key = image.FileName
	return result
}

func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.db.GetUserSettings(userID(c))
	if err != nil {
		h.logger.WithError(err).Error("Failed to get settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings", "code": "INTERNAL"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var settings models.UserSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings body", "code": "INVALID_REQUEST"})
		return
	}
	settings.UserID = userID(c)
	if settings.DefaultExportFormat == "" {
		settings.DefaultExportFormat = "pdf"
	}
	if err := h.db.SaveUserSettings(&settings); err != nil {
		h.logger.WithError(err).Error("Failed to save settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings", "code": "INTERNAL"})
		return
	}
	c.JSON(http.StatusOK, settings)
}
