package database

import (
	"context"

	"github.com/rpupo63/blog-service/models"
)

// BlogStore is the persistence adapter for blog posts. Lookups by id return
// (nil, nil) when no record matches; a malformed id yields errs.ErrInvalidID.
type BlogStore interface {
	Create(ctx context.Context, in models.BlogInput) (*models.Blog, error)
	FindAll(ctx context.Context) ([]*models.Blog, error)
	FindByID(ctx context.Context, id string) (*models.Blog, error)
	UpdateByID(ctx context.Context, id string, in models.BlogInput) (*models.Blog, error)
	DeleteByID(ctx context.Context, id string) (*models.Blog, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type Database struct {
	blogRepo BlogStore
}

// New wraps the store opened at startup. The same instance is shared by
// every request.
func New(blogRepo BlogStore) Database {
	return Database{blogRepo: blogRepo}
}

func (d Database) BlogRepo() BlogStore {
	return d.blogRepo
}

func (d Database) Ping(ctx context.Context) error {
	return d.blogRepo.Ping(ctx)
}

func (d Database) Close(ctx context.Context) error {
	return d.blogRepo.Close(ctx)
}
