package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/harentsoaR/mamacare-api/internal/apperror"
	"github.com/harentsoaR/mamacare-api/internal/models"
)

func newMockTest(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func ns(mt *mtest.T, coll string) string {
	return mt.DB.Name() + "." + coll
}

func TestAccountStore_FindByEmail(t *testing.T) {
	mt := newMockTest(t)

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, UsersCollection), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "amina@example.com"},
			{Key: "password", Value: "$2a$04$hash"},
			{Key: "name", Value: "Amina"},
			{Key: "role", Value: "user"},
			{Key: "deliveryStatus", Value: "pregnancy"},
			{Key: "watch_history", Value: bson.A{"v2", "v1"}},
		}))

		account, err := NewAccountStore(mt.DB).FindByEmail(context.Background(), models.RoleUser, "amina@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, account.ID)
		assert.Equal(mt, "Amina", account.Name)
		assert.Equal(mt, "pregnancy", account.DeliveryStatus)
		assert.Equal(mt, []string{"v2", "v1"}, account.WatchHistory)
	})

	mt.Run("missing history reads as empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, DoctorsCollection), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "dr@example.com"},
			{Key: "role", Value: "doctor"},
		}))

		account, err := NewAccountStore(mt.DB).FindByEmail(context.Background(), models.RoleDoctor, "dr@example.com")
		require.NoError(mt, err)
		assert.NotNil(mt, account.WatchHistory)
		assert.Empty(mt, account.WatchHistory)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, UsersCollection), mtest.FirstBatch))

		_, err := NewAccountStore(mt.DB).FindByEmail(context.Background(), models.RoleUser, "nobody@example.com")
		assert.True(mt, errors.Is(err, apperror.ErrAccountNotFound))
	})
}

func TestAccountStore_FindByID(t *testing.T) {
	mt := newMockTest(t)
	id := primitive.NewObjectID()

	mt.Run("found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, DoctorsCollection), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "dr@example.com"},
			{Key: "role", Value: "doctor"},
			{Key: "clinicName", Value: "Clinique Ankadifotsy"},
		}))

		account, err := NewAccountStore(mt.DB).FindByID(context.Background(), models.RoleDoctor, id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "Clinique Ankadifotsy", account.ClinicName)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		_, err := NewAccountStore(mt.DB).FindByID(context.Background(), models.RoleDoctor, "xyz")
		require.Error(mt, err)
		assert.Equal(mt, "Doctor not found", apperror.Message(err))
	})
}

func TestAccountStore_Create(t *testing.T) {
	mt := newMockTest(t)

	mt.Run("assigns id and empty history", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		account := &models.Account{Email: "a@example.com", Role: models.RoleUser}
		require.NoError(mt, NewAccountStore(mt.DB).Create(context.Background(), account))
		assert.False(mt, account.ID.IsZero())
		assert.Equal(mt, []string{}, account.WatchHistory)
	})

	mt.Run("duplicate key is a duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users index: email_1",
		}))

		err := NewAccountStore(mt.DB).Create(context.Background(), &models.Account{Email: "a@example.com", Role: models.RoleUser})
		assert.True(mt, errors.Is(err, apperror.ErrDuplicateEmail))
	})

	mt.Run("unknown role", func(mt *mtest.T) {
		err := NewAccountStore(mt.DB).Create(context.Background(), &models.Account{Email: "a@example.com", Role: "admin"})
		assert.True(mt, errors.Is(err, apperror.ErrInvalidArgument))
	})
}

func TestAccountStore_EmailExists(t *testing.T) {
	mt := newMockTest(t)

	mt.Run("exists", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, DoctorsCollection), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}))

		exists, err := NewAccountStore(mt.DB).EmailExists(context.Background(), models.RoleDoctor, "dr@example.com")
		require.NoError(mt, err)
		assert.True(mt, exists)
	})

	mt.Run("absent", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, DoctorsCollection), mtest.FirstBatch))

		exists, err := NewAccountStore(mt.DB).EmailExists(context.Background(), models.RoleDoctor, "dr@example.com")
		require.NoError(mt, err)
		assert.False(mt, exists)
	})
}

func TestAccountStore_WatchHistory(t *testing.T) {
	mt := newMockTest(t)
	id := primitive.NewObjectID()

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, UsersCollection), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "watch_history", Value: bson.A{"v3", 42, "v1"}},
		}))

		history, err := NewAccountStore(mt.DB).WatchHistory(context.Background(), models.RoleUser, id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, []string{"v3", "v1"}, history)
	})

	mt.Run("non-list field reads as empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, UsersCollection), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "watch_history", Value: "corrupted"},
		}))

		history, err := NewAccountStore(mt.DB).WatchHistory(context.Background(), models.RoleUser, id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, []string{}, history)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		_, err := NewAccountStore(mt.DB).WatchHistory(context.Background(), models.RoleUser, "nope")
		assert.True(mt, errors.Is(err, apperror.ErrAccountNotFound))
	})
}

func TestAccountStore_SetWatchHistory(t *testing.T) {
	mt := newMockTest(t)
	id := primitive.NewObjectID()

	mt.Run("matched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		err := NewAccountStore(mt.DB).SetWatchHistory(context.Background(), models.RoleDoctor, id.Hex(), []string{"v1"})
		assert.NoError(mt, err)
	})

	mt.Run("no account", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := NewAccountStore(mt.DB).SetWatchHistory(context.Background(), models.RoleDoctor, id.Hex(), []string{"v1"})
		assert.True(mt, errors.Is(err, apperror.ErrAccountNotFound))
	})
}

func TestVideoStore(t *testing.T) {
	mt := newMockTest(t)

	mt.Run("list", func(mt *mtest.T) {
		first := mtest.CreateCursorResponse(1, ns(mt, VideosCollection), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "title", Value: "Breathing"},
			{Key: "uploaded_by", Value: "doc-1"},
		})
		next := mtest.CreateCursorResponse(0, ns(mt, VideosCollection), mtest.NextBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "title", Value: "Sleep"},
			{Key: "uploaded_by", Value: "doc-1"},
		})
		mt.AddMockResponses(first, next)

		videos, err := NewVideoStore(mt.DB).List(context.Background(), "doc-1")
		require.NoError(mt, err)
		require.Len(mt, videos, 2)
		assert.Equal(mt, "Breathing", videos[0].Title)
		assert.Equal(mt, "Sleep", videos[1].Title)
	})

	mt.Run("empty list is not nil", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, VideosCollection), mtest.FirstBatch))

		videos, err := NewVideoStore(mt.DB).List(context.Background(), "")
		require.NoError(mt, err)
		assert.NotNil(mt, videos)
		assert.Empty(mt, videos)
	})

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		video := &models.Video{Title: "Breathing"}
		require.NoError(mt, NewVideoStore(mt.DB).Insert(context.Background(), video))
		assert.False(mt, video.ID.IsZero())
	})

	mt.Run("find malformed id", func(mt *mtest.T) {
		_, err := NewVideoStore(mt.DB).FindByID(context.Background(), "not-hex")
		assert.True(mt, errors.Is(err, apperror.ErrNotFound))
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := NewVideoStore(mt.DB).Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.True(mt, errors.Is(err, apperror.ErrNotFound))
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		err := NewVideoStore(mt.DB).Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.NoError(mt, err)
	})
}
