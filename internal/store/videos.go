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

// listLimit caps a single listing.
const listLimit = 1000

type VideoStore struct {
	DB *mongo.Database
}

func NewVideoStore(db *mongo.Database) *VideoStore {
	return &VideoStore{DB: db}
}

func (s *VideoStore) collection() *mongo.Collection {
	return s.DB.Collection(VideosCollection)
}

func (s *VideoStore) Insert(ctx context.Context, video *models.Video) error {
	if video.ID.IsZero() {
		video.ID = primitive.NewObjectID()
	}
	if _, err := s.collection().InsertOne(ctx, video); err != nil {
		return apperror.Persistence("inserting video", err)
	}
	return nil
}

// List returns videos in insertion order. An empty uploadedBy lists every video.
func (s *VideoStore) List(ctx context.Context, uploadedBy string) ([]models.Video, error) {
	filter := bson.M{}
	if uploadedBy != "" {
		filter["uploaded_by"] = uploadedBy
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}).SetLimit(listLimit)
	cursor, err := s.collection().Find(ctx, filter, findOptions)
	if err != nil {
		return nil, apperror.Persistence("retrieving videos", err)
	}
	defer cursor.Close(ctx)

	var videos []models.Video
	if err = cursor.All(ctx, &videos); err != nil {
		return nil, apperror.Persistence("decoding videos", err)
	}
	if videos == nil {
		videos = make([]models.Video, 0)
	}
	return videos, nil
}

// FindByID treats a malformed ID the same as an unknown one.
func (s *VideoStore) FindByID(ctx context.Context, id string) (*models.Video, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("Video not found")
	}

	var video models.Video
	if err := s.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&video); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Video not found")
		}
		return nil, apperror.Persistence("finding video", err)
	}
	return &video, nil
}

func (s *VideoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.NotFound("Video not found")
	}

	result, err := s.collection().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperror.Persistence("deleting video", err)
	}
	if result.DeletedCount == 0 {
		return apperror.NotFound("Video not found")
	}
	return nil
}
