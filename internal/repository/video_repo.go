package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/avishek100/metmanichaudhary/internal/models"
)

type VideoFilter struct {
	Status   models.Status
	Category string
	Featured *bool
}

type VideoUpdate struct {
	Title            *string
	TitleHindi       *string
	Description      *string
	DescriptionHindi *string
	VideoURL         *string
	VideoFile        *string
	Thumbnail        *string
	Duration         *int
	Category         *string
	Tags             *[]string
	Status           *models.Status
	PublishedAt      *time.Time
}

type VideoRepository interface {
	Insert(ctx context.Context, v *models.Video) error
	Find(ctx context.Context, f VideoFilter, page, limit int) ([]models.Video, int64, error)
	FindByID(ctx context.Context, id string) (*models.Video, error)
	IncViews(ctx context.Context, id string) (*models.Video, error)
	Update(ctx context.Context, id string, upd VideoUpdate) (*models.Video, error)
	Delete(ctx context.Context, id string) error
	ToggleFeatured(ctx context.Context, id string) (*models.Video, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, s models.Status) (int64, error)
	SumViews(ctx context.Context) (int64, error)
}

type mongoVideoRepo struct {
	col *mongo.Collection
}

func NewMongoVideoRepo(db *mongo.Database) VideoRepository {
	return &mongoVideoRepo{col: db.Collection("videos")}
}

func (r *mongoVideoRepo) Insert(ctx context.Context, v *models.Video) error {
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	if v.Tags == nil {
		v.Tags = []string{}
	}
	res, err := r.col.InsertOne(ctx, v)
	if err != nil {
		return err
	}
	v.ID = insertedID(res)
	return nil
}

func (f VideoFilter) query() bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Featured != nil {
		q["featured"] = *f.Featured
	}
	return q
}

func (r *mongoVideoRepo) Find(ctx context.Context, f VideoFilter, page, limit int) ([]models.Video, int64, error) {
	q := f.query()
	cursor, err := r.col.Find(ctx, q, pageOpts(page, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := []models.Video{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	total, err := r.col.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *mongoVideoRepo) FindByID(ctx context.Context, id string) (*models.Video, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var v models.Video
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *mongoVideoRepo) IncViews(ctx context.Context, id string) (*models.Video, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var v models.Video
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (u VideoUpdate) set() bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	setString(set, "title", u.Title)
	setString(set, "titleHindi", u.TitleHindi)
	setString(set, "description", u.Description)
	setString(set, "descriptionHindi", u.DescriptionHindi)
	setString(set, "videoUrl", u.VideoURL)
	setString(set, "videoFile", u.VideoFile)
	setString(set, "thumbnail", u.Thumbnail)
	setString(set, "category", u.Category)
	if u.Duration != nil {
		set["duration"] = *u.Duration
	}
	if u.Tags != nil {
		set["tags"] = *u.Tags
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	if u.PublishedAt != nil {
		set["publishedAt"] = *u.PublishedAt
	}
	return set
}

func (r *mongoVideoRepo) Update(ctx context.Context, id string, upd VideoUpdate) (*models.Video, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var v models.Video
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": upd.set()},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *mongoVideoRepo) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoVideoRepo) ToggleFeatured(ctx context.Context, id string) (*models.Video, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var v models.Video
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		toggleUpdate("featured"),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *mongoVideoRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *mongoVideoRepo) CountByStatus(ctx context.Context, s models.Status) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"status": s})
}

func (r *mongoVideoRepo) SumViews(ctx context.Context) (int64, error) {
	return sumViews(ctx, r.col)
}
