package comment

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nooblk-98/DevOps-Blog/internal/pkg/response"
)

type commentPostRef struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type commentResponse struct {
	ID          uint           `json:"id"`
	PostID      uint           `json:"post_id"`
	ParentID    *uint          `json:"parent_id"`
	AuthorName  string         `json:"author_name"`
	AuthorEmail string         `json:"author_email"`
	Content     string         `json:"content"`
	CreatedAt   time.Time      `json:"created_at"`
	Posts       commentPostRef `json:"posts"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	comments := rg.Group("/comments")
	comments.GET("", h.list)
	comments.POST("", h.create)
	comments.DELETE("/:id", authMW, h.delete)
}

// list GET /comments[?post_id=]
func (h *Handler) list(c *gin.Context) {
	var postID *uint
	if raw := c.Query("post_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "invalid post_id")
			return
		}
		v := uint(id)
		postID = &v
	}

	rows, err := h.svc.List(postID)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]commentResponse, len(rows))
	for i, row := range rows {
		items[i] = commentResponse{
			ID:          row.ID,
			PostID:      row.PostID,
			ParentID:    row.ParentID,
			AuthorName:  row.AuthorName,
			AuthorEmail: row.AuthorEmail,
			Content:     row.Content,
			CreatedAt:   row.CreatedAt,
			Posts:       commentPostRef{Title: row.PostTitle, Slug: row.PostSlug},
		}
	}
	response.Data(c, items)
}

// create POST /comments — public, no auth.
func (h *Handler) create(c *gin.Context) {
	var dto CreateCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if _, err := h.svc.Create(&dto); err != nil {
		switch {
		case errors.Is(err, errPostNotFound):
			response.NotFound(c)
		case errors.Is(err, errParentMismatch):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c)
}

// delete DELETE /comments/:id  [auth]
func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}
	if err := h.svc.Delete(uint(id)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c)
}
