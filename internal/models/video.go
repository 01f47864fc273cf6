package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video references an external URL or an uploaded file, never both required.
type Video struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	TitleHindi       string             `bson:"titleHindi,omitempty" json:"titleHindi,omitempty"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	DescriptionHindi string             `bson:"descriptionHindi,omitempty" json:"descriptionHindi,omitempty"`
	VideoURL         string             `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	VideoFile        string             `bson:"videoFile,omitempty" json:"videoFile,omitempty"`
	Thumbnail        string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Duration         int                `bson:"duration,omitempty" json:"duration,omitempty"`
	Category         string             `bson:"category" json:"category"`
	AuthorID         primitive.ObjectID `bson:"author" json:"-"`
	Author           *Author            `bson:"-" json:"author"`
	Status           Status             `bson:"status" json:"status"`
	PublishedAt      *time.Time         `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	Views            int64              `bson:"views" json:"views"`
	Featured         bool               `bson:"featured" json:"featured"`
	Tags             []string           `bson:"tags" json:"tags"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
