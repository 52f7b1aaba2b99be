package relation

import (
	"errors"
	"strings"

	"github.com/nooblk-98/DevOps-Blog/internal/models"
	"gorm.io/gorm"
)

const defaultRelatedLimit = 3

var errUnknownReference = errors.New("post, category or tag does not exist")

// PostIDRow is a bare post id, the shape the link endpoints return.
type PostIDRow struct {
	PostID uint `json:"post_id"`
}

// Service owns the post_categories and post_tags link tables. Links are
// written with bulk-replace semantics: the existing set for a post is dropped
// and the given set inserted, inside one transaction.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// PostsByCategory lists the post ids linked to a category.
func (s *Service) PostsByCategory(categoryID uint) ([]PostIDRow, error) {
	var rows []PostIDRow
	err := s.db.Table("post_categories").
		Select("post_id").
		Where("category_id = ?", categoryID).
		Scan(&rows).Error
	return rows, err
}

// ReplaceCategories swaps a post's category links for the given set.
func (s *Service) ReplaceCategories(postID uint, categoryIDs []uint) error {
	return s.replaceLinks("post_categories", "category_id", postID, categoryIDs)
}

// ReplaceTags swaps a post's tag links for the given set.
func (s *Service) ReplaceTags(postID uint, tagIDs []uint) error {
	return s.replaceLinks("post_tags", "tag_id", postID, tagIDs)
}

func (s *Service) replaceLinks(table, column string, postID uint, ids []uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM "+table+" WHERE post_id = ?", postID).Error; err != nil {
			return err
		}
		for _, id := range ids {
			insert := "INSERT INTO " + table + " (post_id, " + column + ") VALUES (?, ?)"
			if err := tx.Exec(insert, postID, id).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return errUnknownReference
	}
	return err
}

// RelatedByTags returns distinct post ids sharing any of the given tags,
// optionally excluding one post, capped at limit (default 3).
func (s *Service) RelatedByTags(tagIDs []uint, excludePostID *uint, limit int) ([]PostIDRow, error) {
	rows := []PostIDRow{}
	if len(tagIDs) == 0 {
		return rows, nil
	}
	if limit <= 0 {
		limit = defaultRelatedLimit
	}

	tx := s.db.Table("post_tags").
		Select("DISTINCT post_id").
		Where("tag_id IN ?", tagIDs)
	if excludePostID != nil {
		tx = tx.Where("post_id <> ?", *excludePostID)
	}
	err := tx.Limit(limit).Scan(&rows).Error
	return rows, err
}

// postExists guards bulk writes against dangling post ids.
func (s *Service) postExists(postID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.PostModel{}).Where("id = ?", postID).Count(&count).Error
	return count > 0, err
}
