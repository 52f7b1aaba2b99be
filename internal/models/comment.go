package models

import "time"

// CommentModel is a visitor comment. ParentID enables reply threading and,
// when set, must reference another comment on the same post.
type CommentModel struct {
	ID          uint      `json:"id"           gorm:"primaryKey;autoIncrement"`
	PostID      uint      `json:"post_id"      gorm:"not null;index"`
	ParentID    *uint     `json:"parent_id"    gorm:"index"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	Content     string    `json:"content"      gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (CommentModel) TableName() string { return "comments" }
