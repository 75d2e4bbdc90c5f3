package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/mamacare-api/internal/apperror"
	"github.com/harentsoaR/mamacare-api/internal/models"
)

// AccountStore keeps users and doctors in one collection per role.
type AccountStore struct {
	DB *mongo.Database
}

func NewAccountStore(db *mongo.Database) *AccountStore {
	return &AccountStore{DB: db}
}

func (s *AccountStore) EmailExists(ctx context.Context, role models.Role, email string) (bool, error) {
	coll, err := collectionFor(s.DB, role)
	if err != nil {
		return false, apperror.InvalidArgument(err.Error())
	}
	n, err := coll.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, apperror.Persistence("checking email", err)
	}
	return n > 0, nil
}

// Create inserts account and assigns its ID. A unique-index violation is
// reported as a duplicate email.
func (s *AccountStore) Create(ctx context.Context, account *models.Account) error {
	coll, err := collectionFor(s.DB, account.Role)
	if err != nil {
		return apperror.InvalidArgument(err.Error())
	}
	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}
	if account.WatchHistory == nil {
		account.WatchHistory = []string{}
	}

	if _, err := coll.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.DuplicateEmail()
		}
		return apperror.Persistence("creating account", err)
	}
	return nil
}

func (s *AccountStore) FindByEmail(ctx context.Context, role models.Role, email string) (*models.Account, error) {
	return s.findOne(ctx, role, bson.M{"email": email})
}

func (s *AccountStore) FindByID(ctx context.Context, role models.Role, id string) (*models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.AccountNotFound(string(role))
	}
	return s.findOne(ctx, role, bson.M{"_id": oid})
}

func (s *AccountStore) findOne(ctx context.Context, role models.Role, filter bson.M) (*models.Account, error) {
	coll, err := collectionFor(s.DB, role)
	if err != nil {
		return nil, apperror.InvalidArgument(err.Error())
	}

	var account models.Account
	if err := coll.FindOne(ctx, filter).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.AccountNotFound(string(role))
		}
		return nil, apperror.Persistence("finding account", err)
	}
	if account.WatchHistory == nil {
		account.WatchHistory = []string{}
	}
	return &account, nil
}

// WatchHistory loads only the watch_history field. A missing or non-array
// field reads as an empty history; non-string entries are dropped.
func (s *AccountStore) WatchHistory(ctx context.Context, role models.Role, id string) ([]string, error) {
	coll, err := collectionFor(s.DB, role)
	if err != nil {
		return nil, apperror.InvalidArgument(err.Error())
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.AccountNotFound(string(role))
	}

	var doc bson.M
	err = coll.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(bson.M{"watch_history": 1})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.AccountNotFound(string(role))
		}
		return nil, apperror.Persistence("loading watch history", err)
	}

	raw, ok := doc["watch_history"].(primitive.A)
	if !ok {
		return []string{}, nil
	}
	history := make([]string, 0, len(raw))
	for _, v := range raw {
		if videoID, ok := v.(string); ok {
			history = append(history, videoID)
		}
	}
	return history, nil
}

// SetWatchHistory replaces the whole watch_history field.
func (s *AccountStore) SetWatchHistory(ctx context.Context, role models.Role, id string, history []string) error {
	coll, err := collectionFor(s.DB, role)
	if err != nil {
		return apperror.InvalidArgument(err.Error())
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.AccountNotFound(string(role))
	}

	result, err := coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"watch_history": history}})
	if err != nil {
		return apperror.Persistence("updating watch history", err)
	}
	if result.MatchedCount == 0 {
		return apperror.AccountNotFound(string(role))
	}
	return nil
}
