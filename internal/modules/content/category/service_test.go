package category

import (
	"path/filepath"
	"testing"

	"github.com/nooblk-98/DevOps-Blog/internal/config"
	"github.com/nooblk-98/DevOps-Blog/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func TestCategoryUpsert(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Upsert(&UpsertCategoryDTO{Name: "go"}))
	require.NoError(t, svc.Upsert(&UpsertCategoryDTO{Name: "infra"}))

	t.Run("duplicate name is rejected", func(t *testing.T) {
		err := svc.Upsert(&UpsertCategoryDTO{Name: "go"})
		assert.ErrorIs(t, err, errNameTaken)
	})

	t.Run("rename by id", func(t *testing.T) {
		id := uint(1)
		require.NoError(t, svc.Upsert(&UpsertCategoryDTO{ID: &id, Name: "golang"}))

		cats, err := svc.List()
		require.NoError(t, err)
		require.Len(t, cats, 2)
		// List sorts by name
		assert.Equal(t, "golang", cats[0].Name)
		assert.Equal(t, "infra", cats[1].Name)
	})

	t.Run("rename onto a taken name is rejected", func(t *testing.T) {
		id := uint(1)
		err := svc.Upsert(&UpsertCategoryDTO{ID: &id, Name: "infra"})
		assert.ErrorIs(t, err, errNameTaken)
	})
}

func TestCategoryDelete(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Upsert(&UpsertCategoryDTO{Name: "ephemeral"}))

	require.NoError(t, svc.Delete(1))

	cats, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, cats)
}
