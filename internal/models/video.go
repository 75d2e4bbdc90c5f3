package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	CategoryPostpartum    = "Postpartum"
	CategoryPreconception = "Preconception"
	CategoryPregnancy     = "Pregnancy"
)

type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	YouTubeURL  string             `bson:"youtube_url" json:"youtube_url"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	UploadedBy  string             `bson:"uploaded_by" json:"uploaded_by"` // doctor account ID (hex)
	UploadDate  string             `bson:"upload_date" json:"upload_date"`
	ViewCount   string             `bson:"view_count" json:"view_count"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
}
