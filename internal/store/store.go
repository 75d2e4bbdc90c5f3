// Package store persists accounts and videos in MongoDB.
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/mamacare-api/internal/models"
)

const (
	UsersCollection   = "users"
	DoctorsCollection = "doctors"
	VideosCollection  = "videos"
)

// collectionFor returns the collection that holds accounts of the given role.
func collectionFor(db *mongo.Database, role models.Role) (*mongo.Collection, error) {
	switch role {
	case models.RoleUser:
		return db.Collection(UsersCollection), nil
	case models.RoleDoctor:
		return db.Collection(DoctorsCollection), nil
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
}

// EnsureIndexes creates the per-role unique email indexes and the uploader
// index on videos. It is safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{UsersCollection, DoctorsCollection} {
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("creating email index on %s: %w", name, err)
		}
	}

	_, err := db.Collection(VideosCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "uploaded_by", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("creating uploaded_by index on %s: %w", VideosCollection, err)
	}
	return nil
}

// Pinger reports whether the database is reachable.
type Pinger struct {
	DB *mongo.Database
}

func (p Pinger) Ping(ctx context.Context) error {
	return p.DB.Client().Ping(ctx, nil)
}
