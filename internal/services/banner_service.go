package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrBannerNotFound = errors.New("banner not found")

type BannerService struct {
	db *gorm.DB
}

func NewBannerService(db *gorm.DB) *BannerService {
	return &BannerService{db: db}
}

func (s *BannerService) List() ([]models.Banner, error) {
	var banners []models.Banner
	if err := s.db.Order("created_at DESC").Find(&banners).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch banners: %w", err)
	}
	return banners, nil
}

func (s *BannerService) Create(req *dto.BannerInput) (*models.Banner, error) {
	banner := models.Banner{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
	}
	if len(req.Extra) > 0 {
		raw, err := json.Marshal(req.Extra)
		if err != nil {
			return nil, fmt.Errorf("failed to encode banner extras: %w", err)
		}
		banner.Extra = datatypes.JSON(raw)
	}

	if err := s.db.Create(&banner).Error; err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}
	return &banner, nil
}

func (s *BannerService) Update(id uuid.UUID, req *dto.BannerInput) (*models.Banner, error) {
	var banner models.Banner
	if err := s.db.First(&banner, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, fmt.Errorf("failed to fetch banner: %w", err)
	}

	banner.Title = req.Title
	banner.Subtitle = req.Subtitle
	banner.ImageURL = req.ImageURL
	banner.LinkURL = req.LinkURL
	if len(req.Extra) > 0 {
		raw, err := json.Marshal(req.Extra)
		if err != nil {
			return nil, fmt.Errorf("failed to encode banner extras: %w", err)
		}
		banner.Extra = datatypes.JSON(raw)
	} else {
		banner.Extra = nil
	}

	if err := s.db.Save(&banner).Error; err != nil {
		return nil, fmt.Errorf("failed to update banner: %w", err)
	}
	return &banner, nil
}

func (s *BannerService) Delete(id uuid.UUID) error {
	res := s.db.Delete(&models.Banner{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete banner: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBannerNotFound
	}
	return nil
}
