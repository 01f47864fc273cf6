package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/avishek100/metmanichaudhary/internal/models"
)

// NewsFilter narrows list queries; zero values mean "no filter".
type NewsFilter struct {
	Status   models.Status
	Category string
	Featured *bool
}

// NewsUpdate is a partial update; nil fields are left untouched.
type NewsUpdate struct {
	Title            *string
	TitleHindi       *string
	Description      *string
	DescriptionHindi *string
	Content          *string
	ContentHindi     *string
	Category         *string
	Status           *models.Status
	Image            *string
	PublishedAt      *time.Time
}

type NewsRepository interface {
	Insert(ctx context.Context, n *models.News) error
	Find(ctx context.Context, f NewsFilter, page, limit int) ([]models.News, int64, error)
	FindByID(ctx context.Context, id string) (*models.News, error)
	IncViews(ctx context.Context, id string) (*models.News, error)
	Update(ctx context.Context, id string, upd NewsUpdate) (*models.News, error)
	Delete(ctx context.Context, id string) error
	ToggleFeatured(ctx context.Context, id string) (*models.News, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, s models.Status) (int64, error)
	SumViews(ctx context.Context) (int64, error)
	FindRecent(ctx context.Context, n int) ([]models.News, error)
}

type mongoNewsRepo struct {
	col *mongo.Collection
}

func NewMongoNewsRepo(db *mongo.Database) NewsRepository {
	return &mongoNewsRepo{col: db.Collection("news")}
}

func (r *mongoNewsRepo) Insert(ctx context.Context, n *models.News) error {
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	n.ID = insertedID(res)
	return nil
}

func (f NewsFilter) query() bson.M {
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

func (r *mongoNewsRepo) Find(ctx context.Context, f NewsFilter, page, limit int) ([]models.News, int64, error) {
	q := f.query()
	cursor, err := r.col.Find(ctx, q, pageOpts(page, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := []models.News{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	total, err := r.col.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *mongoNewsRepo) FindByID(ctx context.Context, id string) (*models.News, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var n models.News
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// IncViews bumps the view counter server-side so concurrent reads cannot
// lose increments, and returns the post-increment document.
func (r *mongoNewsRepo) IncViews(ctx context.Context, id string) (*models.News, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var n models.News
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (u NewsUpdate) set() bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	setString(set, "title", u.Title)
	setString(set, "titleHindi", u.TitleHindi)
	setString(set, "description", u.Description)
	setString(set, "descriptionHindi", u.DescriptionHindi)
	setString(set, "content", u.Content)
	setString(set, "contentHindi", u.ContentHindi)
	setString(set, "category", u.Category)
	setString(set, "image", u.Image)
	if u.Status != nil {
		set["status"] = *u.Status
	}
	if u.PublishedAt != nil {
		set["publishedAt"] = *u.PublishedAt
	}
	return set
}

func (r *mongoNewsRepo) Update(ctx context.Context, id string, upd NewsUpdate) (*models.News, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var n models.News
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": upd.set()},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *mongoNewsRepo) Delete(ctx context.Context, id string) error {
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

func (r *mongoNewsRepo) ToggleFeatured(ctx context.Context, id string) (*models.News, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var n models.News
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		toggleUpdate("featured"),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *mongoNewsRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *mongoNewsRepo) CountByStatus(ctx context.Context, s models.Status) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"status": s})
}

func (r *mongoNewsRepo) SumViews(ctx context.Context) (int64, error) {
	return sumViews(ctx, r.col)
}

func (r *mongoNewsRepo) FindRecent(ctx context.Context, n int) ([]models.News, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, pageOpts(1, n))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []models.News{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
