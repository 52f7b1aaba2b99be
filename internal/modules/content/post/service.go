package post

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nooblk-98/DevOps-Blog/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errSlugTaken = errors.New("slug already exists")

// Service handles post business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns posts matching the optional filters, newest first. Offset and
// limit slice the materialized result set, so paging over the same data is
// stable: identical queries return identical pages and consecutive pages
// concatenate to the full list.
func (s *Service) List(lq ListQuery) ([]models.PostModel, error) {
	tx := s.db.Model(&models.PostModel{}).
		Preload("Categories").
		Preload("Tags").
		Preload("View").
		Order("created_at DESC, id DESC")

	if lq.Status != nil {
		tx = tx.Where("status = ?", *lq.Status)
	}
	if lq.IsPinned != nil {
		tx = tx.Where("is_pinned = ?", *lq.IsPinned)
	}
	if lq.From != nil {
		if from, err := parseTimeParam(*lq.From); err == nil {
			tx = tx.Where("created_at >= ?", from)
		}
	}
	if lq.To != nil {
		if to, err := parseTimeParam(*lq.To); err == nil {
			tx = tx.Where("created_at <= ?", to)
		}
	}
	if lq.IDs != nil {
		if ids := parseIDList(*lq.IDs); len(ids) > 0 {
			tx = tx.Where("id IN ?", ids)
		}
	}
	if lq.Slug != nil {
		tx = tx.Where("slug = ?", *lq.Slug)
	}
	if lq.Search != nil && *lq.Search != "" {
		like := "%" + *lq.Search + "%"
		tx = tx.Where("title LIKE ? OR summary LIKE ?", like, like)
	}

	var posts []models.PostModel
	if err := tx.Find(&posts).Error; err != nil {
		return nil, err
	}

	if lq.Limit != nil {
		offset := 0
		if lq.Offset != nil && *lq.Offset > 0 {
			offset = *lq.Offset
		}
		if offset >= len(posts) {
			return []models.PostModel{}, nil
		}
		end := offset + *lq.Limit
		if end > len(posts) {
			end = len(posts)
		}
		posts = posts[offset:end]
	}
	return posts, nil
}

// GetByIdentifier fetches one post. A numeric identifier is treated as an id;
// anything else is a slug lookup.
func (s *Service) GetByIdentifier(identifier string) (*models.PostModel, error) {
	tx := s.db.Preload("Categories").Preload("Tags").Preload("View")
	var post models.PostModel
	var err error
	if id, convErr := strconv.ParseUint(identifier, 10, 64); convErr == nil {
		err = tx.First(&post, "id = ?", id).Error
	} else {
		err = tx.First(&post, "slug = ?", identifier).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Upsert creates the post, or fully replaces the stored fields when an id is
// given. The created post carries its new id back to the caller.
func (s *Service) Upsert(dto *UpsertPostDTO) (*models.PostModel, error) {
	status := dto.Status
	if status == "" {
		status = models.StatusDraft
	}

	if dto.ID != nil {
		updates := map[string]interface{}{
			"title":       dto.Title,
			"description": dto.Description,
			"summary":     dto.Summary,
			"image_url":   dto.ImageURL,
			"slug":        dto.Slug,
			"is_pinned":   dto.IsPinned,
			"status":      status,
		}
		result := s.db.Model(&models.PostModel{}).Where("id = ?", *dto.ID).Updates(updates)
		if result.Error != nil {
			return nil, mapConstraintError(result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, nil
		}
		return s.GetByIdentifier(strconv.FormatUint(uint64(*dto.ID), 10))
	}

	var count int64
	s.db.Model(&models.PostModel{}).Where("slug = ?", dto.Slug).Count(&count)
	if count > 0 {
		return nil, errSlugTaken
	}

	post := models.PostModel{
		Title:       dto.Title,
		Description: dto.Description,
		Summary:     dto.Summary,
		ImageURL:    dto.ImageURL,
		Slug:        dto.Slug,
		IsPinned:    dto.IsPinned,
		Status:      status,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, mapConstraintError(err)
	}
	return &post, nil
}

// Delete removes a post; category links, tag links, the view counter and
// comments go with it via the foreign-key cascade.
func (s *Service) Delete(id uint) error {
	return s.db.Delete(&models.PostModel{}, "id = ?", id).Error
}

// IncrementView bumps the view counter in a single upsert statement, creating
// the row at 1 on first touch. Concurrent increments cannot lose updates.
func (s *Service) IncrementView(id uint) error {
	var count int64
	if err := s.db.Model(&models.PostModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"view_count": gorm.Expr("view_count + 1"),
		}),
	}).Create(&models.PostViewModel{PostID: id, ViewCount: 1}).Error
}

func parseTimeParam(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", raw)
}

func parseIDList(raw string) []uint {
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		if id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64); err == nil && id > 0 {
			ids = append(ids, uint(id))
		}
	}
	return ids
}

// mapConstraintError rewrites a slug uniqueness violation into the sentinel
// the handler reports as a 400.
func mapConstraintError(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: posts.slug") {
		return errSlugTaken
	}
	return err
}
