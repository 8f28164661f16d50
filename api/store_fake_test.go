package api

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rpupo63/blog-service/errs"
	"github.com/rpupo63/blog-service/models"
)

// memStore is an in-memory BlogStore with a clock that advances one
// millisecond per call, so creation order is always observable.
type memStore struct {
	mu      sync.Mutex
	blogs   map[string]models.Blog
	clock   time.Time
	failErr error
	pingErr error
}

func newMemStore() *memStore {
	return &memStore{
		blogs: map[string]models.Blog{},
		clock: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func (s *memStore) Create(_ context.Context, in models.BlogInput) (*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}

	fields, err := models.ValidateBlogInput(in)
	if err != nil {
		return nil, err
	}

	now := s.tick()
	blog := models.Blog{
		ID:        models.NewID(),
		Title:     fields.Title,
		Body:      fields.Body,
		Author:    fields.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.blogs[blog.ID] = blog
	return &blog, nil
}

func (s *memStore) FindAll(_ context.Context) ([]*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}

	blogs := make([]*models.Blog, 0, len(s.blogs))
	for _, blog := range s.blogs {
		blog := blog
		blogs = append(blogs, &blog)
	}
	sort.Slice(blogs, func(i, j int) bool {
		return blogs[i].CreatedAt.After(blogs[j].CreatedAt)
	})
	return blogs, nil
}

func (s *memStore) FindByID(_ context.Context, id string) (*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	if !models.IsValidID(id) {
		return nil, errs.ErrInvalidID
	}

	blog, ok := s.blogs[strings.ToLower(id)]
	if !ok {
		return nil, nil
	}
	return &blog, nil
}

func (s *memStore) UpdateByID(_ context.Context, id string, in models.BlogInput) (*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	if !models.IsValidID(id) {
		return nil, errs.ErrInvalidID
	}

	fields, err := models.ValidateBlogInput(in)
	if err != nil {
		return nil, err
	}

	blog, ok := s.blogs[strings.ToLower(id)]
	if !ok {
		return nil, nil
	}
	blog.Title = fields.Title
	blog.Body = fields.Body
	blog.Author = fields.Author
	blog.UpdatedAt = s.tick()
	s.blogs[blog.ID] = blog
	return &blog, nil
}

func (s *memStore) DeleteByID(_ context.Context, id string) (*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	if !models.IsValidID(id) {
		return nil, errs.ErrInvalidID
	}

	blog, ok := s.blogs[strings.ToLower(id)]
	if !ok {
		return nil, nil
	}
	delete(s.blogs, blog.ID)
	return &blog, nil
}

func (s *memStore) Ping(context.Context) error {
	return s.pingErr
}

func (s *memStore) Close(context.Context) error {
	return nil
}
