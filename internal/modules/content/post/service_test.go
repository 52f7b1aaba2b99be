package post

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nooblk-98/DevOps-Blog/internal/config"
	"github.com/nooblk-98/DevOps-Blog/internal/database"
	"github.com/nooblk-98/DevOps-Blog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := &config.AppConfig{
		Env:          "production",
		DatabasePath: filepath.Join(t.TempDir(), "test.sqlite"),
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	return NewService(db)
}

func seedPost(t *testing.T, svc *Service, title, slug string, status models.PostStatus, createdAt time.Time) *models.PostModel {
	t.Helper()
	p := &models.PostModel{Title: title, Slug: slug, Status: status, CreatedAt: createdAt}
	require.NoError(t, svc.db.Create(p).Error)
	return p
}

func TestUpsertCreate(t *testing.T) {
	svc := newTestService(t)

	post, err := svc.Upsert(&UpsertPostDTO{Title: "Hello", Slug: "hello"})
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.NotZero(t, post.ID)
	assert.Equal(t, models.StatusDraft, post.Status, "missing status defaults to draft")

	t.Run("duplicate slug is rejected", func(t *testing.T) {
		_, err := svc.Upsert(&UpsertPostDTO{Title: "Other", Slug: "hello"})
		assert.ErrorIs(t, err, errSlugTaken)
	})

	t.Run("update of unknown id reports not found", func(t *testing.T) {
		missing := uint(9999)
		got, err := svc.Upsert(&UpsertPostDTO{ID: &missing, Title: "x", Slug: "x"})
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestUpsertUpdateReplacesFields(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Upsert(&UpsertPostDTO{
		Title:   "Before",
		Slug:    "before",
		Summary: "old summary",
		Status:  models.StatusPublished,
	})
	require.NoError(t, err)

	updated, err := svc.Upsert(&UpsertPostDTO{
		ID:       &created.ID,
		Title:    "After",
		Slug:     "after",
		IsPinned: true,
		Status:   models.StatusPublished,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, "after", updated.Slug)
	assert.True(t, updated.IsPinned)
	assert.Empty(t, updated.Summary, "unsent fields are cleared, not preserved")
}

func TestGetByIdentifier(t *testing.T) {
	svc := newTestService(t)
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	p := seedPost(t, svc, "Lookup", "lookup-me", models.StatusPublished, base)

	t.Run("numeric id", func(t *testing.T) {
		got, err := svc.GetByIdentifier("1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, p.ID, got.ID)
	})

	t.Run("slug fallback", func(t *testing.T) {
		got, err := svc.GetByIdentifier("lookup-me")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, p.ID, got.ID)
	})

	t.Run("missing post is nil without error", func(t *testing.T) {
		got, err := svc.GetByIdentifier("no-such-slug")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestListFilters(t *testing.T) {
	svc := newTestService(t)
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	seedPost(t, svc, "Alpha intro", "alpha", models.StatusPublished, base)
	seedPost(t, svc, "Beta guide", "beta", models.StatusPublished, base.Add(time.Hour))
	seedPost(t, svc, "Gamma draft", "gamma", models.StatusDraft, base.Add(2*time.Hour))

	t.Run("newest first", func(t *testing.T) {
		posts, err := svc.List(ListQuery{})
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, "gamma", posts[0].Slug)
		assert.Equal(t, "alpha", posts[2].Slug)
	})

	t.Run("status filter", func(t *testing.T) {
		status := "published"
		posts, err := svc.List(ListQuery{Status: &status})
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})

	t.Run("search matches title", func(t *testing.T) {
		search := "Beta"
		posts, err := svc.List(ListQuery{Search: &search})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "beta", posts[0].Slug)
	})

	t.Run("ids filter", func(t *testing.T) {
		ids := "1,3"
		posts, err := svc.List(ListQuery{IDs: &ids})
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})

	t.Run("date window", func(t *testing.T) {
		from := base.Add(30 * time.Minute).Format(time.RFC3339)
		posts, err := svc.List(ListQuery{From: &from})
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})
}

func TestListPagination(t *testing.T) {
	svc := newTestService(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, slug := range []string{"one", "two", "three", "four", "five"} {
		seedPost(t, svc, slug, slug, models.StatusPublished, base.Add(time.Duration(i)*time.Hour))
	}

	limit := 2
	all, err := svc.List(ListQuery{})
	require.NoError(t, err)
	require.Len(t, all, 5)

	// consecutive pages concatenate to the unpaged list
	var paged []models.PostModel
	for offset := 0; offset < 5; offset += limit {
		o := offset
		page, err := svc.List(ListQuery{Limit: &limit, Offset: &o})
		require.NoError(t, err)
		paged = append(paged, page...)
	}
	require.Len(t, paged, 5)
	for i := range all {
		assert.Equal(t, all[i].ID, paged[i].ID)
	}

	t.Run("offset past the end is empty", func(t *testing.T) {
		offset := 50
		page, err := svc.List(ListQuery{Limit: &limit, Offset: &offset})
		require.NoError(t, err)
		assert.Empty(t, page)
	})
}

func TestIncrementView(t *testing.T) {
	svc := newTestService(t)

	t.Run("missing post", func(t *testing.T) {
		err := svc.IncrementView(42)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	p := seedPost(t, svc, "Viewed", "viewed", models.StatusPublished, time.Now())

	require.NoError(t, svc.IncrementView(p.ID))
	require.NoError(t, svc.IncrementView(p.ID))
	require.NoError(t, svc.IncrementView(p.ID))

	var view models.PostViewModel
	require.NoError(t, svc.db.First(&view, "post_id = ?", p.ID).Error)
	assert.Equal(t, 3, view.ViewCount)
}

func TestDeleteCascades(t *testing.T) {
	svc := newTestService(t)
	p := seedPost(t, svc, "Doomed", "doomed", models.StatusPublished, time.Now())

	require.NoError(t, svc.IncrementView(p.ID))
	require.NoError(t, svc.db.Create(&models.CommentModel{
		PostID: p.ID, AuthorName: "visitor", Content: "nice post",
	}).Error)

	require.NoError(t, svc.Delete(p.ID))

	var views, comments int64
	require.NoError(t, svc.db.Model(&models.PostViewModel{}).Where("post_id = ?", p.ID).Count(&views).Error)
	require.NoError(t, svc.db.Model(&models.CommentModel{}).Where("post_id = ?", p.ID).Count(&comments).Error)
	assert.Zero(t, views)
	assert.Zero(t, comments)
}
