package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kebabkartan/backend/internal/service"
	"github.com/kebabkartan/backend/internal/types"
)

// 5 MB cap on uploaded place photos.
const maxImageBytes = 5 << 20

type PlaceHandler struct {
	placeService service.IPlaceService
	imageService *service.ImageService
}

func NewPlaceHandler(placeService service.IPlaceService, imageService *service.ImageService) *PlaceHandler {
	return &PlaceHandler{
		placeService: placeService,
		imageService: imageService,
	}
}

func (h *PlaceHandler) RegisterRoutes(router *gin.RouterGroup) {
	places := router.Group("/kebab-places")
	{
		places.GET("", h.ListPlaces)
		places.POST("", h.CreatePlace)
		places.GET("/:id", h.GetPlace)
		places.PUT("/:id", h.UpdatePlace)
		places.GET("/by-slug/*slug", h.GetPlaceBySlug)
		places.POST("/:id/image", h.UploadPlaceImage)
	}
}

func (h *PlaceHandler) ListPlaces(c *gin.Context) {
	places, err := h.placeService.List(c.Request.Context(), c.Query("q"), c.Query("tag"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": places})
}

func (h *PlaceHandler) GetPlace(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid place id"})
		return
	}

	place, err := h.placeService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, place)
}

func (h *PlaceHandler) GetPlaceBySlug(c *gin.Context) {
	slug := strings.TrimPrefix(c.Param("slug"), "/")

	place, err := h.placeService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, place)
}

func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	var req types.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	place, err := h.placeService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, place)
}

func (h *PlaceHandler) UpdatePlace(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid place id"})
		return
	}

	var req types.UpdatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	place, err := h.placeService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, place)
}

// UploadPlaceImage accepts a multipart form with an `image` file and the
// admin password, stores the photo in S3 and records its URL on the place.
func (h *PlaceHandler) UploadPlaceImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid place id"})
		return
	}

	if err := h.placeService.CheckAdminPassword(c.PostForm("adminPassword")); err != nil {
		respondError(c, err)
		return
	}

	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		respondError(c, err)
		return
	}

	url, err := h.imageService.UploadPlaceImage(c.Request.Context(), id, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.placeService.SetImageURL(c.Request.Context(), id, url); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}
