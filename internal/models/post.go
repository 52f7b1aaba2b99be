package models

import "time"

// PostStatus is the publication state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// PostModel is a blog post. Description holds the rendered rich-text HTML.
type PostModel struct {
	ID          uint       `json:"id"          gorm:"primaryKey;autoIncrement"`
	Title       string     `json:"title"       gorm:"not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Summary     string     `json:"summary"     gorm:"not null"`
	ImageURL    string     `json:"image_url"   gorm:"column:image_url;not null"`
	Slug        string     `json:"slug"        gorm:"uniqueIndex;not null"`
	IsPinned    bool       `json:"is_pinned"   gorm:"default:false"`
	Status      PostStatus `json:"status"      gorm:"type:text;default:'draft';not null;index;check:status IN ('draft','published')"`
	CreatedAt   time.Time  `json:"created_at"`

	Categories []CategoryModel `json:"categories" gorm:"many2many:post_categories;joinForeignKey:PostID;joinReferences:CategoryID;constraint:OnDelete:CASCADE"`
	Tags       []TagModel      `json:"tags"       gorm:"many2many:post_tags;joinForeignKey:PostID;joinReferences:TagID;constraint:OnDelete:CASCADE"`
	View       *PostViewModel  `json:"-"          gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Comments   []CommentModel  `json:"-"          gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (PostModel) TableName() string { return "posts" }

// ViewCount returns the lazily-created counter; a missing row means zero views.
func (p PostModel) ViewCount() int {
	if p.View == nil {
		return 0
	}
	return p.View.ViewCount
}
