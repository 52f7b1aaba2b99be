package category

import (
	"errors"
	"strings"

	"github.com/nooblk-98/DevOps-Blog/internal/models"
	"gorm.io/gorm"
)

var errNameTaken = errors.New("category name already exists")

// UpsertCategoryDTO creates a category, or renames one when id is present.
type UpsertCategoryDTO struct {
	ID   *uint  `json:"id"`
	Name string `json:"name" binding:"required"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List() ([]models.CategoryModel, error) {
	var cats []models.CategoryModel
	return cats, s.db.Order("name ASC").Find(&cats).Error
}

func (s *Service) Upsert(dto *UpsertCategoryDTO) error {
	if dto.ID != nil {
		err := s.db.Model(&models.CategoryModel{}).
			Where("id = ?", *dto.ID).
			Update("name", dto.Name).Error
		return mapConstraintError(err)
	}
	return mapConstraintError(s.db.Create(&models.CategoryModel{Name: dto.Name}).Error)
}

// Delete removes the category; post links disappear via the cascade.
func (s *Service) Delete(id uint) error {
	return s.db.Delete(&models.CategoryModel{}, "id = ?", id).Error
}

func mapConstraintError(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return errNameTaken
	}
	return err
}
