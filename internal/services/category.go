package services

import (
	"errors"
	"strings"

	"github.com/ledgerline/firmdesk/backend/internal/models"
	"github.com/ledgerline/firmdesk/backend/pkg/response"
	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create adds a new category. Names must be non-empty and unique.
func (s *CategoryService) Create(req *CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidation("category name must not be empty", nil)
	}

	var count int64
	s.db.Model(&models.Category{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		return nil, response.NewConflict("category already exists")
	}

	category := models.Category{Name: name}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

// List returns all categories ordered by name.
func (s *CategoryService) List() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Delete removes a category by id. Forms referencing it keep their
// category_id; rendering resolves a missing category to "uncategorized".
func (s *CategoryService) Delete(id uint) error {
	result := s.db.Delete(&models.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("category not found")
	}
	return nil
}

// GetByID returns a category by id.
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("category not found")
		}
		return nil, err
	}
	return &category, nil
}
