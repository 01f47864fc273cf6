package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Photo is a gallery image grouped into a named album.
type Photo struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	TitleHindi       string             `bson:"titleHindi,omitempty" json:"titleHindi,omitempty"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	DescriptionHindi string             `bson:"descriptionHindi,omitempty" json:"descriptionHindi,omitempty"`
	Image            string             `bson:"image" json:"image"`
	Thumbnail        string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Album            string             `bson:"album" json:"album"`
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
