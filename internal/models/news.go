package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// News is a bilingual news article with a required cover image.
type News struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	TitleHindi       string             `bson:"titleHindi,omitempty" json:"titleHindi,omitempty"`
	Description      string             `bson:"description" json:"description"`
	DescriptionHindi string             `bson:"descriptionHindi,omitempty" json:"descriptionHindi,omitempty"`
	Content          string             `bson:"content,omitempty" json:"content,omitempty"`
	ContentHindi     string             `bson:"contentHindi,omitempty" json:"contentHindi,omitempty"`
	Image            string             `bson:"image" json:"image"`
	AuthorID         primitive.ObjectID `bson:"author" json:"-"`
	Author           *Author            `bson:"-" json:"author"`
	Category         string             `bson:"category" json:"category"`
	Status           Status             `bson:"status" json:"status"`
	PublishedAt      *time.Time         `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	Views            int64              `bson:"views" json:"views"`
	Featured         bool               `bson:"featured" json:"featured"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
