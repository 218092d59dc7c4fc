package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/harentsoaR/elearn-portal/internal/models"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(mongo.ErrNoDocuments), ErrNotFound)

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}
	assert.ErrorIs(t, translate(dup), ErrDuplicate)

	other := errors.New("connection reset")
	assert.Equal(t, other, translate(other))
}

func TestIndexModels_OwnerIndexSkipsRecordsWithoutOwner(t *testing.T) {
	idx := indexModels()

	owner := idx[EnrollmentsCollection]
	require.NotNil(t, owner.Options)
	require.NotNil(t, owner.Options.Unique)
	assert.True(t, *owner.Options.Unique)
	assert.Equal(t, bson.M{"userId": bson.M{"$exists": true}}, owner.Options.PartialFilterExpression)

	email := idx[UsersCollection]
	require.NotNil(t, email.Options.Unique)
	assert.True(t, *email.Options.Unique)
	assert.Nil(t, email.Options.PartialFilterExpression)

	ttl := idx[SessionsCollection]
	require.NotNil(t, ttl.Options.ExpireAfterSeconds)
	assert.Equal(t, int32(0), *ttl.Options.ExpireAfterSeconds)
}

func TestMongoUsers(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("duplicate email", func(mt *mtest.T) {
		users := &MongoUsers{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error collection: sugam.Register index: email_1",
		}))

		u := &models.User{Email: "jane@example.com"}
		err := users.Create(ctx, u)
		assert.ErrorIs(mt, err, ErrDuplicate)
		assert.False(mt, u.ID.IsZero())
	})

	mt.Run("find by email", func(mt *mtest.T) {
		users := &MongoUsers{coll: mt.Coll}
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "fullname", Value: "Jane Doe"},
			{Key: "email", Value: "jane@example.com"},
		}))

		got, err := users.FindByEmail(ctx, "jane@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, got.ID)
		assert.Equal(mt, "Jane Doe", got.FullName)
	})

	mt.Run("unknown email", func(mt *mtest.T) {
		users := &MongoUsers{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := users.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("server error passes through", func(mt *mtest.T) {
		users := &MongoUsers{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "bad query",
		}))

		_, err := users.FindByID(ctx, primitive.NewObjectID())
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrNotFound)
		assert.NotErrorIs(mt, err, ErrDuplicate)
	})
}

func TestMongoEnrollments(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find all keeps order", func(mt *mtest.T) {
		enrollments := &MongoEnrollments{coll: mt.Coll}
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: first}, {Key: "name", Value: "Ann"}, {Key: "subjects", Value: bson.A{"Math"}}},
			bson.D{{Key: "_id", Value: second}, {Key: "name", Value: "Bob"}},
		))

		all, err := enrollments.FindAll(ctx)
		require.NoError(mt, err)
		require.Len(mt, all, 2)
		assert.Equal(mt, first, all[0].ID)
		assert.Equal(mt, []string{"Math"}, all[0].Subjects)
		assert.Equal(mt, "Bob", all[1].StudentName)
	})

	mt.Run("find all empty", func(mt *mtest.T) {
		enrollments := &MongoEnrollments{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		all, err := enrollments.FindAll(ctx)
		require.NoError(mt, err)
		assert.NotNil(mt, all)
		assert.Empty(mt, all)
	})

	mt.Run("second enrollment for owner", func(mt *mtest.T) {
		enrollments := &MongoEnrollments{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error collection: sugam.Student index: userId_1",
		}))

		err := enrollments.Create(ctx, &models.Enrollment{OwnerID: primitive.NewObjectID()})
		assert.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("update unknown id", func(mt *mtest.T) {
		enrollments := &MongoEnrollments{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := enrollments.Update(ctx, &models.Enrollment{ID: primitive.NewObjectID(), StudentName: "Ann"})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("update matched", func(mt *mtest.T) {
		enrollments := &MongoEnrollments{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := enrollments.Update(ctx, &models.Enrollment{ID: primitive.NewObjectID(), StudentName: "Ann"})
		assert.NoError(mt, err)
	})

	mt.Run("delete unknown id", func(mt *mtest.T) {
		enrollments := &MongoEnrollments{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := enrollments.Delete(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("malformed id never reaches the server", func(mt *mtest.T) {
		enrollments := &MongoEnrollments{coll: mt.Coll}

		_, err := enrollments.FindByID(ctx, "not-an-id")
		assert.ErrorIs(mt, err, ErrNotFound)
		assert.ErrorIs(mt, enrollments.Delete(ctx, "not-an-id"), ErrNotFound)
	})
}

func TestMongoSessions_Missing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find", func(mt *mtest.T) {
		sessions := &MongoSessions{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := sessions.Find(context.Background(), "missing")
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
