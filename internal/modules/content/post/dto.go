package post

import (
	"time"

	"github.com/nooblk-98/DevOps-Blog/internal/models"
)

// UpsertPostDTO is the request body for creating or updating a post.
// A present ID selects update; the row is fully replaced with the sent fields.
type UpsertPostDTO struct {
	ID          *uint             `json:"id"`
	Title       string            `json:"title"       binding:"required"`
	Description string            `json:"description"`
	Summary     string            `json:"summary"`
	ImageURL    string            `json:"image_url"`
	Slug        string            `json:"slug"        binding:"required"`
	IsPinned    bool              `json:"is_pinned"`
	Status      models.PostStatus `json:"status"`
}

// ListQuery holds the optional filters for listing posts.
type ListQuery struct {
	Status   *string `form:"status"`
	IsPinned *bool   `form:"is_pinned"`
	From     *string `form:"from"`
	To       *string `form:"to"`
	IDs      *string `form:"ids"`
	Slug     *string `form:"slug"`
	Search   *string `form:"search"`
	Limit    *int    `form:"limit"`
	Offset   *int    `form:"offset"`
}

type viewEntry struct {
	ViewCount int `json:"view_count"`
}

// postResponse is the API shape for a post: the row plus nested categories,
// tags and the view counter as a zero-or-one element array.
type postResponse struct {
	ID          uint                   `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Summary     string                 `json:"summary"`
	ImageURL    string                 `json:"image_url"`
	Slug        string                 `json:"slug"`
	IsPinned    bool                   `json:"is_pinned"`
	Status      models.PostStatus      `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
	Categories  []models.CategoryModel `json:"categories"`
	Tags        []models.TagModel      `json:"tags"`
	PostViews   []viewEntry            `json:"post_views"`
}

func toResponse(p *models.PostModel) postResponse {
	categories := p.Categories
	if categories == nil {
		categories = []models.CategoryModel{}
	}
	tags := p.Tags
	if tags == nil {
		tags = []models.TagModel{}
	}
	views := []viewEntry{}
	if p.View != nil {
		views = append(views, viewEntry{ViewCount: p.View.ViewCount})
	}
	return postResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Summary:     p.Summary,
		ImageURL:    p.ImageURL,
		Slug:        p.Slug,
		IsPinned:    p.IsPinned,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		Categories:  categories,
		Tags:        tags,
		PostViews:   views,
	}
}
