package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/avishek100/metmanichaudhary/internal/models"
)

type PhotoFilter struct {
	Status   models.Status
	Album    string
	Featured *bool
}

type PhotoUpdate struct {
	Title            *string
	TitleHindi       *string
	Description      *string
	DescriptionHindi *string
	Album            *string
	Image            *string
	Thumbnail        *string
	Tags             *[]string
	Status           *models.Status
	PublishedAt      *time.Time
}

type PhotoRepository interface {
	Insert(ctx context.Context, p *models.Photo) error
	Find(ctx context.Context, f PhotoFilter, page, limit int) ([]models.Photo, int64, error)
	FindByID(ctx context.Context, id string) (*models.Photo, error)
	IncViews(ctx context.Context, id string) (*models.Photo, error)
	Update(ctx context.Context, id string, upd PhotoUpdate) (*models.Photo, error)
	Delete(ctx context.Context, id string) error
	ToggleFeatured(ctx context.Context, id string) (*models.Photo, error)
	Albums(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, s models.Status) (int64, error)
	SumViews(ctx context.Context) (int64, error)
}

type mongoPhotoRepo struct {
	col *mongo.Collection
}

func NewMongoPhotoRepo(db *mongo.Database) PhotoRepository {
	return &mongoPhotoRepo{col: db.Collection("photos")}
}

func (r *mongoPhotoRepo) Insert(ctx context.Context, p *models.Photo) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Tags == nil {
		p.Tags = []string{}
	}
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = insertedID(res)
	return nil
}

func (f PhotoFilter) query() bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Album != "" {
		q["album"] = f.Album
	}
	if f.Featured != nil {
		q["featured"] = *f.Featured
	}
	return q
}

func (r *mongoPhotoRepo) Find(ctx context.Context, f PhotoFilter, page, limit int) ([]models.Photo, int64, error) {
	q := f.query()
	cursor, err := r.col.Find(ctx, q, pageOpts(page, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := []models.Photo{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	total, err := r.col.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *mongoPhotoRepo) FindByID(ctx context.Context, id string) (*models.Photo, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var p models.Photo
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoPhotoRepo) IncViews(ctx context.Context, id string) (*models.Photo, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var p models.Photo
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (u PhotoUpdate) set() bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	setString(set, "title", u.Title)
	setString(set, "titleHindi", u.TitleHindi)
	setString(set, "description", u.Description)
	setString(set, "descriptionHindi", u.DescriptionHindi)
	setString(set, "album", u.Album)
	setString(set, "image", u.Image)
	setString(set, "thumbnail", u.Thumbnail)
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

func (r *mongoPhotoRepo) Update(ctx context.Context, id string, upd PhotoUpdate) (*models.Photo, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var p models.Photo
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": upd.set()},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoPhotoRepo) Delete(ctx context.Context, id string) error {
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

func (r *mongoPhotoRepo) ToggleFeatured(ctx context.Context, id string) (*models.Photo, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var p models.Photo
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		toggleUpdate("featured"),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoPhotoRepo) Albums(ctx context.Context) ([]string, error) {
	raw, err := r.col.Distinct(ctx, "album", bson.M{})
	if err != nil {
		return nil, err
	}
	albums := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			albums = append(albums, s)
		}
	}
	return albums, nil
}

func (r *mongoPhotoRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *mongoPhotoRepo) CountByStatus(ctx context.Context, s models.Status) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"status": s})
}

func (r *mongoPhotoRepo) SumViews(ctx context.Context) (int64, error) {
	return sumViews(ctx, r.col)
}
