package blog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/taibuivan/blogapi/internal/blog"
	"github.com/taibuivan/blogapi/internal/platform/apperr"
	"github.com/taibuivan/blogapi/internal/platform/constants"
	"github.com/taibuivan/blogapi/pkg/pointer"
)

func mongoNamespace(mt *mtest.T) string {
	return mt.DB.Name() + "." + constants.PostsCollection
}

func mongoDocument(id primitive.ObjectID, title string) bson.D {
	created := primitive.NewDateTimeFromTime(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "content", Value: "Lorem ipsum"},
		{Key: "author", Value: bson.D{
			{Key: "firstName", Value: "Tom"},
			{Key: "lastName", Value: "Smith"},
		}},
		{Key: "createdAt", Value: created},
		{Key: "updatedAt", Value: created},
	}
}

/*
TestMongoRepository_ListPosts decodes every document of the first batch.
*/
func TestMongoRepository_ListPosts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("documents", func(mt *mtest.T) {
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mongoNamespace(mt), mtest.FirstBatch,
			mongoDocument(first, "One"),
			mongoDocument(second, "Two"),
		))

		posts, err := blog.NewMongoRepository(mt.DB).ListPosts(context.Background())
		require.NoError(mt, err)
		require.Len(mt, posts, 2)

		assert.Equal(mt, first.Hex(), posts[0].ID)
		assert.Equal(mt, "One", posts[0].Title)
		assert.Equal(mt, "Tom Smith", posts[0].AuthorString())
		assert.Equal(mt, second.Hex(), posts[1].ID)
	})

	mt.Run("empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mongoNamespace(mt), mtest.FirstBatch))

		posts, err := blog.NewMongoRepository(mt.DB).ListPosts(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, posts)
		assert.Empty(mt, posts)
	})

	mt.Run("command_error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad query at 10.0.0.3",
			Name:    "BadValue",
		}))

		_, err := blog.NewMongoRepository(mt.DB).ListPosts(context.Background())
		ae := apperr.As(err)
		require.NotNil(mt, ae)
		assert.Equal(mt, apperr.CodeInternal, ae.Code)
		assert.NotContains(mt, ae.Message, "10.0.0.3")
	})
}

/*
TestMongoRepository_GetPost covers a hit, a miss and ids that are not ObjectIDs.
*/
func TestMongoRepository_GetPost(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("hit", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mongoNamespace(mt), mtest.FirstBatch, mongoDocument(id, "A blog")))

		post, err := blog.NewMongoRepository(mt.DB).GetPost(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), post.ID)
		assert.Equal(mt, "A blog", post.Title)
		assert.Equal(mt, blog.Author{FirstName: "Tom", LastName: "Smith"}, post.Author)
		assert.False(mt, post.CreatedAt.IsZero())
	})

	mt.Run("miss", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mongoNamespace(mt), mtest.FirstBatch))

		_, err := blog.NewMongoRepository(mt.DB).GetPost(context.Background(), primitive.NewObjectID().Hex())
		assert.True(mt, apperr.IsNotFound(err))
	})

	mt.Run("invalid_hex", func(mt *mtest.T) {
		for _, id := range []string{"does-not-exist", "123", ""} {
			_, err := blog.NewMongoRepository(mt.DB).GetPost(context.Background(), id)
			assert.True(mt, apperr.IsNotFound(err), id)
		}
	})
}

/*
TestMongoRepository_CreatePost assigns an ObjectID and both timestamps.
*/
func TestMongoRepository_CreatePost(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p := samplePost("A blog")
		require.NoError(mt, blog.NewMongoRepository(mt.DB).CreatePost(context.Background(), p))

		_, err := primitive.ObjectIDFromHex(p.ID)
		assert.NoError(mt, err)
		assert.False(mt, p.CreatedAt.IsZero())
		assert.Equal(mt, p.CreatedAt, p.UpdatedAt)
	})
}

/*
TestMongoRepository_UpdatePost sends only the present fields in $set and
reports an unmatched id as not found.
*/
func TestMongoRepository_UpdatePost(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("partial_set", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: int32(1)},
			bson.E{Key: "nModified", Value: int32(1)},
		))

		patch := blog.PostPatch{Title: pointer.To("Renamed")}
		require.NoError(mt, blog.NewMongoRepository(mt.DB).UpdatePost(context.Background(), id.Hex(), patch))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		require.Equal(mt, "update", started.CommandName)

		var command struct {
			Collection string `bson:"update"`
			Updates []struct {
				Q bson.M `bson:"q"`
				U struct {
					Set bson.M `bson:"$set"`
				} `bson:"u"`
			} `bson:"updates"`
		}
		require.NoError(mt, bson.Unmarshal(started.Command, &command))
		assert.Equal(mt, "blogs", command.Collection)
		require.Len(mt, command.Updates, 1)

		update := command.Updates[0]
		assert.Equal(mt, id, update.Q["_id"])
		assert.Equal(mt, "Renamed", update.U.Set["title"])
		assert.Contains(mt, update.U.Set, "updatedAt")
		assert.NotContains(mt, update.U.Set, "content")
		assert.NotContains(mt, update.U.Set, "author")
	})

	mt.Run("unmatched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: int32(0)},
			bson.E{Key: "nModified", Value: int32(0)},
		))

		err := blog.NewMongoRepository(mt.DB).UpdatePost(context.Background(), primitive.NewObjectID().Hex(),
			blog.PostPatch{Title: pointer.To("x")})
		assert.True(mt, apperr.IsNotFound(err))
	})

	mt.Run("invalid_hex", func(mt *mtest.T) {
		err := blog.NewMongoRepository(mt.DB).UpdatePost(context.Background(), "does-not-exist",
			blog.PostPatch{Title: pointer.To("x")})
		assert.True(mt, apperr.IsNotFound(err))
	})
}

/*
TestMongoRepository_DeletePost succeeds for known, unknown and malformed ids.
*/
func TestMongoRepository_DeletePost(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deleted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}))
		assert.NoError(mt, blog.NewMongoRepository(mt.DB).DeletePost(context.Background(), primitive.NewObjectID().Hex()))
	})

	mt.Run("unknown", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}))
		assert.NoError(mt, blog.NewMongoRepository(mt.DB).DeletePost(context.Background(), primitive.NewObjectID().Hex()))
	})

	mt.Run("invalid_hex", func(mt *mtest.T) {
		assert.NoError(mt, blog.NewMongoRepository(mt.DB).DeletePost(context.Background(), "does-not-exist"))
	})
}

/*
TestMongoRepository_Ping reaches the primary through the client.
*/
func TestMongoRepository_Ping(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ok", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		assert.NoError(mt, blog.NewMongoRepository(mt.DB).Ping(context.Background()))
	})
}
