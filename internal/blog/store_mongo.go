package blog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taibuivan/blogapi/internal/platform/constants"
	"github.com/taibuivan/blogapi/internal/platform/dberr"
	mongostore "github.com/taibuivan/blogapi/internal/platform/mongo"
)

// mongoPost is the BSON document stored in the posts collection.
type mongoPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Author    Author             `bson:"author"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *mongoPost) post() *Post {
	return &Post{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		Author:    d.Author,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(constants.PostsCollection)}
}

func (repository *MongoRepository) ListPosts(ctx context.Context) ([]*Post, error) {
	cursor, err := repository.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, dberr.Wrap(err, "list_posts")
	}

	var documents []mongoPost
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, dberr.Wrap(err, "decode_posts")
	}

	posts := make([]*Post, 0, len(documents))
	for i := range documents {
		posts = append(posts, documents[i].post())
	}
	return posts, nil
}

func (repository *MongoRepository) GetPost(ctx context.Context, id string) (*Post, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Not an ObjectID, so no document can carry it.
		return nil, dberr.ErrNotFound
	}

	var document mongoPost
	err = repository.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&document)
	if err != nil {
		return nil, dberr.Wrap(err, "get_post")
	}
	return document.post(), nil
}

func (repository *MongoRepository) CreatePost(ctx context.Context, p *Post) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	document := mongoPost{
		ID:        primitive.NewObjectID(),
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := repository.collection.InsertOne(ctx, document); err != nil {
		return dberr.Wrap(err, "create_post")
	}

	p.ID = document.ID.Hex()
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (repository *MongoRepository) UpdatePost(ctx context.Context, id string, patch PostPatch) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return dberr.ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC().Truncate(time.Millisecond)}
	for field, value := range patch.Fields() {
		set[field] = value
	}

	result, err := repository.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return dberr.Wrap(err, "update_post")
	}
	if result.MatchedCount == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *MongoRepository) DeletePost(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	if _, err := repository.collection.DeleteOne(ctx, bson.M{"_id": objectID}); err != nil {
		return dberr.Wrap(err, "delete_post")
	}
	return nil
}

func (repository *MongoRepository) Ping(ctx context.Context) error {
	return mongostore.Ping(ctx, repository.collection.Database().Client())
}
