// Package repository holds the MongoDB persistence layer. Every collection
// is exposed through an interface so services can be tested against fakes.
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a lookup by id matches no document.
var ErrNotFound = errors.New("document not found")

// Pagination math shared by every list endpoint.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}

// pageOpts builds find options for createdAt-descending pagination.
func pageOpts(page, limit int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
}

// sumViews runs the $group/$sum aggregation over a content collection.
func sumViews(ctx context.Context, col *mongo.Collection) (int64, error) {
	cursor, err := col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$views"}}}},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// toggleUpdate is the server-side boolean flip used for featured flags and
// account status, applied as a single atomic pipeline update.
func toggleUpdate(field string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			field:       bson.M{"$not": "$" + field},
			"updatedAt": "$$NOW",
		}}},
	}
}

func setString(set bson.M, key string, val *string) {
	if val != nil {
		set[key] = *val
	}
}

func insertedID(res *mongo.InsertOneResult) primitive.ObjectID {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid
	}
	return primitive.NilObjectID
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}
