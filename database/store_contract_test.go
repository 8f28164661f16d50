//go:build integration

package database

import (
	"context"
	"testing"
	"time"

	"github.com/rpupo63/blog-service/errs"
	"github.com/rpupo63/blog-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract checks the behavior every BlogStore must share. setNow
// swaps the store clock.
func runStoreContract(t *testing.T, store BlogStore, setNow func(func() time.Time)) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("create assigns id, default author and equal timestamps", func(t *testing.T) {
		setNow(func() time.Time { return base })

		blog, err := store.Create(ctx, models.BlogInput{Title: strPtr(" T "), Body: strPtr(" B ")})
		require.NoError(t, err)
		assert.True(t, models.IsValidID(blog.ID))
		assert.Equal(t, "T", blog.Title)
		assert.Equal(t, " B ", blog.Body)
		assert.Equal(t, models.DefaultAuthor, blog.Author)
		assert.True(t, blog.CreatedAt.Equal(blog.UpdatedAt))

		found, err := store.FindByID(ctx, blog.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, blog.Title, found.Title)
		assert.Equal(t, blog.Body, found.Body)
		assert.Equal(t, blog.Author, found.Author)
		assert.True(t, blog.CreatedAt.Equal(found.CreatedAt))
	})

	t.Run("create rejects missing fields", func(t *testing.T) {
		_, err := store.Create(ctx, models.BlogInput{Body: strPtr("B")})
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "title", validationErr.Field)
	})

	t.Run("absent and malformed ids", func(t *testing.T) {
		blog, err := store.FindByID(ctx, models.NewID())
		require.NoError(t, err)
		assert.Nil(t, blog)

		blog, err = store.UpdateByID(ctx, models.NewID(), models.NewBlogInput("T", "B", ""))
		require.NoError(t, err)
		assert.Nil(t, blog)

		blog, err = store.DeleteByID(ctx, models.NewID())
		require.NoError(t, err)
		assert.Nil(t, blog)

		_, err = store.FindByID(ctx, "nope")
		assert.ErrorIs(t, err, errs.ErrInvalidID)
	})

	t.Run("update within the creation millisecond still moves updatedAt forward", func(t *testing.T) {
		setNow(func() time.Time { return base })

		blog, err := store.Create(ctx, models.NewBlogInput("T", "B", "Ada"))
		require.NoError(t, err)

		updated, err := store.UpdateByID(ctx, blog.ID, models.BlogInput{Title: strPtr("T2"), Body: strPtr("$B2")})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "T2", updated.Title)
		assert.Equal(t, "$B2", updated.Body)
		assert.Equal(t, models.DefaultAuthor, updated.Author)
		assert.True(t, updated.CreatedAt.Equal(blog.CreatedAt))
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

		found, err := store.FindByID(ctx, blog.ID)
		require.NoError(t, err)
		assert.Equal(t, "T2", found.Title)
		assert.True(t, found.UpdatedAt.Equal(updated.UpdatedAt))
	})

	t.Run("delete returns the snapshot", func(t *testing.T) {
		blog, err := store.Create(ctx, models.NewBlogInput("gone", "soon", "Ada"))
		require.NoError(t, err)

		deleted, err := store.DeleteByID(ctx, blog.ID)
		require.NoError(t, err)
		require.NotNil(t, deleted)
		assert.Equal(t, blog.ID, deleted.ID)
		assert.Equal(t, "gone", deleted.Title)

		found, err := store.FindByID(ctx, blog.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("find all is newest first", func(t *testing.T) {
		existing, err := store.FindAll(ctx)
		require.NoError(t, err)
		for _, blog := range existing {
			_, err := store.DeleteByID(ctx, blog.ID)
			require.NoError(t, err)
		}

		var ids []string
		for i := 0; i < 3; i++ {
			at := base.Add(time.Duration(i+1) * time.Hour)
			setNow(func() time.Time { return at })
			blog, err := store.Create(ctx, models.NewBlogInput("T", "B", ""))
			require.NoError(t, err)
			ids = append(ids, blog.ID)
		}

		blogs, err := store.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, blogs, 3)
		assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{blogs[0].ID, blogs[1].ID, blogs[2].ID})
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})
}

func strPtr(s string) *string { return &s }
