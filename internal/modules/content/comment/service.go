package comment

import (
	"errors"

	"github.com/nooblk-98/DevOps-Blog/internal/models"
	"gorm.io/gorm"
)

var (
	errPostNotFound   = errors.New("post not found")
	errParentMismatch = errors.New("parent comment does not belong to the same post")
)

// CreateCommentDTO is the public comment submission body. ParentID turns the
// comment into a threaded reply.
type CreateCommentDTO struct {
	PostID      uint   `json:"post_id"      binding:"required"`
	ParentID    *uint  `json:"parent_id"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	Content     string `json:"content"      binding:"required"`
}

// listedComment is a comment row joined with its post's title and slug.
type listedComment struct {
	models.CommentModel
	PostTitle string `json:"-"`
	PostSlug  string `json:"-"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns comments joined with the parent post for display context.
// Scoped to a post: oldest first, ready for thread assembly. Global (admin
// moderation view): newest first.
func (s *Service) List(postID *uint) ([]listedComment, error) {
	tx := s.db.Table("comments").
		Select("comments.*, posts.title AS post_title, posts.slug AS post_slug").
		Joins("JOIN posts ON posts.id = comments.post_id")

	if postID != nil {
		tx = tx.Where("comments.post_id = ?", *postID).Order("comments.created_at ASC, comments.id ASC")
	} else {
		tx = tx.Order("comments.created_at DESC, comments.id DESC")
	}

	var rows []listedComment
	return rows, tx.Scan(&rows).Error
}

// Create stores a visitor comment. A reply's parent must exist and belong to
// the same post.
func (s *Service) Create(dto *CreateCommentDTO) (*models.CommentModel, error) {
	var postCount int64
	if err := s.db.Model(&models.PostModel{}).Where("id = ?", dto.PostID).Count(&postCount).Error; err != nil {
		return nil, err
	}
	if postCount == 0 {
		return nil, errPostNotFound
	}

	if dto.ParentID != nil {
		var parent models.CommentModel
		if err := s.db.First(&parent, "id = ?", *dto.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errParentMismatch
			}
			return nil, err
		}
		if parent.PostID != dto.PostID {
			return nil, errParentMismatch
		}
	}

	comment := models.CommentModel{
		PostID:      dto.PostID,
		ParentID:    dto.ParentID,
		AuthorName:  dto.AuthorName,
		AuthorEmail: dto.AuthorEmail,
		Content:     dto.Content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *Service) Delete(id uint) error {
	return s.db.Delete(&models.CommentModel{}, "id = ?", id).Error
}
