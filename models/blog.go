package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultAuthor is stored when a post is submitted without an author.
const DefaultAuthor = "Anonymous"

// Blog represents a stored blog post. The JSON field names match what the
// static client reads, including the document-style "_id".
type Blog struct {
	ID        string    `json:"_id" db:"id" gorm:"type:varchar(24);primaryKey;not null"`
	Title     string    `json:"title" db:"title" gorm:"type:text;not null"`
	Body      string    `json:"body" db:"body" gorm:"type:text;not null"`
	Author    string    `json:"author" db:"author" gorm:"type:text;not null;default:'Anonymous'"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;index:idx_posts_created_at,sort:desc"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"column:updated_at;type:timestamptz;not null"`
}

func (Blog) TableName() string {
	return "posts"
}

// BlogInput is the payload accepted by create and update. Pointers tell an
// absent field apart from an empty one; both fail validation the same way.
type BlogInput struct {
	Title  *string `json:"title"`
	Body   *string `json:"body"`
	Author *string `json:"author"`
}

// BlogFields is a validated, normalized BlogInput.
type BlogFields struct {
	Title  string
	Body   string
	Author string
}

// ValidationError reports the first field of a BlogInput that failed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateBlogInput trims the title and author, defaults the author and
// checks that title and body are present, in that order. The body is kept
// verbatim.
func ValidateBlogInput(in BlogInput) (BlogFields, error) {
	var fields BlogFields

	if in.Title != nil {
		fields.Title = strings.TrimSpace(*in.Title)
	}
	if fields.Title == "" {
		return BlogFields{}, &ValidationError{Field: "title", Message: "Title is required field"}
	}

	if in.Body != nil {
		fields.Body = *in.Body
	}
	if fields.Body == "" {
		return BlogFields{}, &ValidationError{Field: "body", Message: "Body is required field"}
	}

	if in.Author != nil {
		fields.Author = strings.TrimSpace(*in.Author)
	}
	if fields.Author == "" {
		fields.Author = DefaultAuthor
	}

	return fields, nil
}

// IsValidID reports whether id has the identifier format of the store,
// a 24 character hex ObjectID. It says nothing about whether a record exists.
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// NewID returns a fresh identifier in the same format the document store
// assigns, so both backends hand out interchangeable ids.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// NewBlogInput is a convenience for building inputs in code.
func NewBlogInput(title, body, author string) BlogInput {
	return BlogInput{Title: &title, Body: &body, Author: &author}
}
