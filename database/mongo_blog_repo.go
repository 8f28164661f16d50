package database

import (
	"context"
	"errors"
	"time"

	"github.com/rpupo63/blog-service/errs"
	"github.com/rpupo63/blog-service/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const blogCollection = "posts"

// blogDocument is the stored shape of a post.
type blogDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Body      string             `bson:"body"`
	Author    string             `bson:"author"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d blogDocument) toModel() *models.Blog {
	return &models.Blog{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Body:      d.Body,
		Author:    d.Author,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type MongoBlogRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

func NewMongoBlogRepo(client *mongo.Client, databaseName string) *MongoBlogRepo {
	return newMongoBlogRepo(client.Database(databaseName).Collection(blogCollection))
}

func newMongoBlogRepo(coll *mongo.Collection) *MongoBlogRepo {
	return &MongoBlogRepo{
		client: coll.Database().Client(),
		coll:   coll,
		now:    time.Now,
	}
}

// EnsureIndexes creates the index backing the newest-first listing.
func (r *MongoBlogRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	})
	return err
}

// timestamp matches the millisecond precision of BSON dates so the value
// returned from Create equals what a later read decodes.
func (r *MongoBlogRepo) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

// Create validates and inserts a new post
func (r *MongoBlogRepo) Create(ctx context.Context, in models.BlogInput) (*models.Blog, error) {
	fields, err := models.ValidateBlogInput(in)
	if err != nil {
		return nil, err
	}

	now := r.timestamp()
	doc := blogDocument{
		ID:        primitive.NewObjectID(),
		Title:     fields.Title,
		Body:      fields.Body,
		Author:    fields.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

// FindAll returns every post, newest first
func (r *MongoBlogRepo) FindAll(ctx context.Context) ([]*models.Blog, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	var docs []blogDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	blogs := make([]*models.Blog, 0, len(docs))
	for _, doc := range docs {
		blogs = append(blogs, doc.toModel())
	}
	return blogs, nil
}

// FindByID returns a post by its ID, or nil if there is none
func (r *MongoBlogRepo) FindByID(ctx context.Context, id string) (*models.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.ErrInvalidID
	}

	var doc blogDocument
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	return decodeSingle(doc, err)
}

// UpdateByID replaces title, body and author and returns the updated post.
// updatedAt is kept strictly after createdAt even when both fall in the same
// millisecond.
func (r *MongoBlogRepo) UpdateByID(ctx context.Context, id string, in models.BlogInput) (*models.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.ErrInvalidID
	}

	fields, err := models.ValidateBlogInput(in)
	if err != nil {
		return nil, err
	}

	// Pipeline form so updatedAt can be computed from createdAt. $literal
	// keeps user text starting with "$" from being read as a field path.
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "title", Value: bson.D{{Key: "$literal", Value: fields.Title}}},
			{Key: "body", Value: bson.D{{Key: "$literal", Value: fields.Body}}},
			{Key: "author", Value: bson.D{{Key: "$literal", Value: fields.Author}}},
			{Key: "updatedAt", Value: bson.D{{Key: "$max", Value: bson.A{
				r.timestamp(),
				bson.D{{Key: "$add", Value: bson.A{"$createdAt", 1}}},
			}}}},
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc blogDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc)
	return decodeSingle(doc, err)
}

// DeleteByID removes a post and returns it as it was before deletion
func (r *MongoBlogRepo) DeleteByID(ctx context.Context, id string) (*models.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.ErrInvalidID
	}

	var doc blogDocument
	err = r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	return decodeSingle(doc, err)
}

func (r *MongoBlogRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func (r *MongoBlogRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func decodeSingle(doc blogDocument, err error) (*models.Blog, error) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}
