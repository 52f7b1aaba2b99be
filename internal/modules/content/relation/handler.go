package relation

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nooblk-98/DevOps-Blog/internal/pkg/response"
)

// BulkCategoriesDTO replaces a post's category links wholesale.
type BulkCategoriesDTO struct {
	PostID      uint   `json:"post_id"      binding:"required"`
	CategoryIDs []uint `json:"category_ids"`
}

// BulkTagsDTO replaces a post's tag links wholesale.
type BulkTagsDTO struct {
	PostID uint   `json:"post_id" binding:"required"`
	TagIDs []uint `json:"tag_ids"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/post_categories", h.postsByCategory)
	rg.POST("/post_categories/bulk", authMW, h.bulkCategories)

	rg.GET("/post_tags/by_tags", h.relatedByTags)
	rg.POST("/post_tags/bulk", authMW, h.bulkTags)
}

// postsByCategory GET /post_categories?category_id=
func (h *Handler) postsByCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Query("category_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "category_id is required")
		return
	}
	rows, err := h.svc.PostsByCategory(uint(categoryID))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Data(c, rows)
}

// bulkCategories POST /post_categories/bulk  [auth]
func (h *Handler) bulkCategories(c *gin.Context) {
	var dto BulkCategoriesDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.replace(c, dto.PostID, func() error {
		return h.svc.ReplaceCategories(dto.PostID, dto.CategoryIDs)
	})
}

// bulkTags POST /post_tags/bulk  [auth]
func (h *Handler) bulkTags(c *gin.Context) {
	var dto BulkTagsDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.replace(c, dto.PostID, func() error {
		return h.svc.ReplaceTags(dto.PostID, dto.TagIDs)
	})
}

func (h *Handler) replace(c *gin.Context, postID uint, run func() error) {
	exists, err := h.svc.postExists(postID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !exists {
		response.NotFound(c)
		return
	}
	if err := run(); err != nil {
		if errors.Is(err, errUnknownReference) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c)
}

// relatedByTags GET /post_tags/by_tags?tag_ids=1,2&exclude_post_id=&limit=
func (h *Handler) relatedByTags(c *gin.Context) {
	tagIDs := parseIDList(c.Query("tag_ids"))

	var exclude *uint
	if raw := c.Query("exclude_post_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			v := uint(id)
			exclude = &v
		}
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	rows, err := h.svc.RelatedByTags(tagIDs, exclude, limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Data(c, rows)
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
