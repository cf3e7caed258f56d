package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kebabkartan/backend/internal/models"
	"github.com/kebabkartan/backend/internal/types"
)

// Slug format: mandatory `restaurang/` prefix, then lowercase letters,
// digits and hyphens. Double hyphens are legal; a leading hyphen is not.
var slugPattern = regexp.MustCompile(`^restaurang/[a-z0-9][a-z0-9-]*$`)

// ValidateSlug reports whether s is a well-formed place slug.
func ValidateSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// PlaceService owns the restaurant directory: listing with search filters,
// slug resolution, and the admin-gated create/update paths.
type PlaceService struct {
	db            *gorm.DB
	adminPassword string
}

func NewPlaceService(db *gorm.DB, adminPassword string) *PlaceService {
	return &PlaceService{
		db:            db,
		adminPassword: adminPassword,
	}
}

// CheckAdminPassword gates the create/update paths with the shared admin
// secret from configuration. Constant-time compare; the legacy plaintext
// body transport is kept for client compatibility.
func (s *PlaceService) CheckAdminPassword(password string) error {
	if s.adminPassword == "" {
		return ErrBadAdminPassword
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) != 1 {
		return ErrBadAdminPassword
	}
	return nil
}

// List returns all places, optionally filtered by a case-insensitive
// substring over names and by a category tag.
func (s *PlaceService) List(ctx context.Context, search, tag string) ([]models.Place, error) {
	query := s.db.WithContext(ctx)

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ?", like)
	}

	if tag != "" {
		like := `%"` + tag + `"%`
		if s.db.Dialector.Name() == "postgres" {
			query = query.Where("tags::text LIKE ?", like)
		} else {
			query = query.Where("tags LIKE ?", like)
		}
	}

	var places []models.Place
	if err := query.Order("name asc").Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

func (s *PlaceService) Get(ctx context.Context, id uuid.UUID) (*models.Place, error) {
	var place models.Place
	if err := s.db.WithContext(ctx).First(&place, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &place, nil
}

// GetBySlug resolves a URL deep link (`restaurang/<name>`) to its place.
func (s *PlaceService) GetBySlug(ctx context.Context, slug string) (*models.Place, error) {
	if !ValidateSlug(slug) {
		return nil, ErrInvalidSlug
	}
	var place models.Place
	if err := s.db.WithContext(ctx).First(&place, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &place, nil
}

func (s *PlaceService) Create(ctx context.Context, req *types.CreatePlaceRequest) (*models.Place, error) {
	if err := s.CheckAdminPassword(req.AdminPassword); err != nil {
		return nil, err
	}
	if !ValidateSlug(req.Slug) {
		return nil, ErrInvalidSlug
	}
	tags := models.TagList(req.Tags)
	if !tags.Valid() {
		return nil, ErrInvalidTag
	}

	var existing models.Place
	if err := s.db.WithContext(ctx).First(&existing, "slug = ?", req.Slug).Error; err == nil {
		return nil, ErrSlugTaken
	}

	place := models.Place{
		ID:           uuid.New(),
		Name:         req.Name,
		Slug:         req.Slug,
		City:         req.City,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		OpeningHours: req.OpeningHours,
		PriceRange:   req.PriceRange,
		Tags:         tags,
	}
	if err := s.db.WithContext(ctx).Create(&place).Error; err != nil {
		return nil, err
	}
	return &place, nil
}

func (s *PlaceService) Update(ctx context.Context, id uuid.UUID, req *types.UpdatePlaceRequest) (*models.Place, error) {
	if err := s.CheckAdminPassword(req.AdminPassword); err != nil {
		return nil, err
	}

	place, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil {
		if !ValidateSlug(*req.Slug) {
			return nil, ErrInvalidSlug
		}
		place.Slug = *req.Slug
	}
	if req.Tags != nil {
		tags := models.TagList(*req.Tags)
		if !tags.Valid() {
			return nil, ErrInvalidTag
		}
		place.Tags = tags
	}
	if req.Name != nil {
		place.Name = *req.Name
	}
	if req.City != nil {
		place.City = *req.City
	}
	if req.Address != nil {
		place.Address = *req.Address
	}
	if req.Latitude != nil {
		place.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		place.Longitude = *req.Longitude
	}
	if req.OpeningHours != nil {
		place.OpeningHours = *req.OpeningHours
	}
	if req.PriceRange != nil {
		place.PriceRange = *req.PriceRange
	}

	if err := s.db.WithContext(ctx).Save(place).Error; err != nil {
		return nil, err
	}
	return place, nil
}

// SetImageURL records the uploaded photo location on the place.
func (s *PlaceService) SetImageURL(ctx context.Context, id uuid.UUID, url string) error {
	result := s.db.WithContext(ctx).Model(&models.Place{}).Where("id = ?", id).Update("image_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
