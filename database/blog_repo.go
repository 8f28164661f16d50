package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rpupo63/blog-service/errs"
	"github.com/rpupo63/blog-service/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLBlogRepo stores posts in the posts table through gorm.
type SQLBlogRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSQLBlogRepo(db *gorm.DB) *SQLBlogRepo {
	return &SQLBlogRepo{db: db, now: time.Now}
}

func (r *SQLBlogRepo) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

// Create validates and inserts a new blog post
func (r *SQLBlogRepo) Create(ctx context.Context, in models.BlogInput) (*models.Blog, error) {
	fields, err := models.ValidateBlogInput(in)
	if err != nil {
		return nil, err
	}

	now := r.timestamp()
	blog := models.Blog{
		ID:        models.NewID(),
		Title:     fields.Title,
		Body:      fields.Body,
		Author:    fields.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// FindAll returns all blog posts, newest first
func (r *SQLBlogRepo) FindAll(ctx context.Context) ([]*models.Blog, error) {
	blogs := []*models.Blog{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&blogs).Error
	return blogs, err
}

// FindByID returns a blog post by its ID, or nil if there is none
func (r *SQLBlogRepo) FindByID(ctx context.Context, id string) (*models.Blog, error) {
	if !models.IsValidID(id) {
		return nil, errs.ErrInvalidID
	}

	var blog models.Blog
	err := r.db.WithContext(ctx).Where("id = ?", strings.ToLower(id)).First(&blog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// UpdateByID replaces title, body and author on an existing blog post
func (r *SQLBlogRepo) UpdateByID(ctx context.Context, id string, in models.BlogInput) (*models.Blog, error) {
	if !models.IsValidID(id) {
		return nil, errs.ErrInvalidID
	}

	fields, err := models.ValidateBlogInput(in)
	if err != nil {
		return nil, err
	}

	var updated *models.Blog
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		blog, err := lockBlog(tx, id)
		if err != nil || blog == nil {
			return err
		}

		updatedAt := r.timestamp()
		if !updatedAt.After(blog.CreatedAt) {
			updatedAt = blog.CreatedAt.Add(time.Millisecond)
		}

		if err := tx.Model(blog).Updates(map[string]any{
			"title":      fields.Title,
			"body":       fields.Body,
			"author":     fields.Author,
			"updated_at": updatedAt,
		}).Error; err != nil {
			return err
		}

		blog.Title = fields.Title
		blog.Body = fields.Body
		blog.Author = fields.Author
		blog.UpdatedAt = updatedAt
		updated = blog
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteByID removes a blog post and returns it as it was before deletion
func (r *SQLBlogRepo) DeleteByID(ctx context.Context, id string) (*models.Blog, error) {
	if !models.IsValidID(id) {
		return nil, errs.ErrInvalidID
	}

	var deleted *models.Blog
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		blog, err := lockBlog(tx, id)
		if err != nil || blog == nil {
			return err
		}

		if err := tx.Delete(&models.Blog{}, "id = ?", blog.ID).Error; err != nil {
			return err
		}
		deleted = blog
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (r *SQLBlogRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *SQLBlogRepo) Close(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// lockBlog reads a row FOR UPDATE inside tx; nil means no such row.
func lockBlog(tx *gorm.DB, id string) (*models.Blog, error) {
	var blog models.Blog
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", strings.ToLower(id)).
		First(&blog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}
