package services

import (
	"context"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/avishek100/metmanichaudhary/internal/apperror"
	"github.com/avishek100/metmanichaudhary/internal/models"
	"github.com/avishek100/metmanichaudhary/internal/repository"
	"github.com/avishek100/metmanichaudhary/internal/storage"
)

type NewsService struct {
	repo  repository.NewsRepository
	users repository.UserRepository
	store storage.Store
	log   *zap.Logger
}

func NewNewsService(repo repository.NewsRepository, users repository.UserRepository, store storage.Store, log *zap.Logger) *NewsService {
	return &NewsService{repo: repo, users: users, store: store, log: log}
}

type CreateNewsInput struct {
	Title            string
	TitleHindi       string
	Description      string
	DescriptionHindi string
	Content          string
	ContentHindi     string
	Category         string
	Status           models.Status
	Image            *storage.File
}

type UpdateNewsInput struct {
	Title            *string
	TitleHindi       *string
	Description      *string
	DescriptionHindi *string
	Content          *string
	ContentHindi     *string
	Category         *string
	Status           *models.Status
	PublishedAt      *time.Time
	Image            *storage.File
}

// NewsPage is one page of a filtered listing.
type NewsPage struct {
	Items       []models.News
	Total       int64
	TotalPages  int
	CurrentPage int
}

func (s *NewsService) Create(ctx context.Context, authorID primitive.ObjectID, in CreateNewsInput) (*models.News, error) {
	if in.Title == "" || in.Description == "" || in.Image == nil {
		return nil, apperror.New(apperror.KindValidation, "news.required_fields")
	}
	category, err := normalizeCategory(in.Category, models.NewsCategories, "update")
	if err != nil {
		return nil, err
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.store.Upload(ctx, in.Image.Name, in.Image.ContentType, in.Image.Data)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "upload.failed", err)
	}

	n := &models.News{
		Title:            in.Title,
		TitleHindi:       in.TitleHindi,
		Description:      in.Description,
		DescriptionHindi: in.DescriptionHindi,
		Content:          in.Content,
		ContentHindi:     in.ContentHindi,
		Image:            imageURL,
		AuthorID:         authorID,
		Category:         category,
		Status:           status,
	}
	if status == models.StatusPublished {
		now := time.Now().UTC()
		n.PublishedAt = &now
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		return nil, err
	}
	s.attachAuthor(ctx, n)
	return n, nil
}

func (s *NewsService) List(ctx context.Context, f repository.NewsFilter, page, limit int) (*NewsPage, error) {
	page, limit = normalizePage(page, limit, 10)
	items, total, err := s.repo.Find(ctx, f, page, limit)
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthors(ctx, items); err != nil {
		return nil, err
	}
	return &NewsPage{
		Items:       items,
		Total:       total,
		TotalPages:  repository.TotalPages(total, limit),
		CurrentPage: page,
	}, nil
}

// Get returns the item and counts the view. Each call moves the stored
// counter by exactly one.
func (s *NewsService) Get(ctx context.Context, id string) (*models.News, error) {
	n, err := s.repo.IncViews(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "news.not_found")
	}
	s.attachAuthor(ctx, n)
	return n, nil
}

func (s *NewsService) Update(ctx context.Context, id string, in UpdateNewsInput) (*models.News, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "news.not_found")
	}

	upd := repository.NewsUpdate{
		Title:            in.Title,
		TitleHindi:       in.TitleHindi,
		Description:      in.Description,
		DescriptionHindi: in.DescriptionHindi,
		Content:          in.Content,
		ContentHindi:     in.ContentHindi,
		PublishedAt:      in.PublishedAt,
	}
	if in.Category != nil {
		category, err := normalizeCategory(*in.Category, models.NewsCategories, "update")
		if err != nil {
			return nil, err
		}
		upd.Category = &category
	}
	if in.Status != nil {
		status, err := normalizeStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		upd.Status = &status
		// the publish timestamp is sticky: set on the first transition to
		// published, untouched afterwards unless the caller supplies one
		if status == models.StatusPublished && existing.PublishedAt == nil && in.PublishedAt == nil {
			now := time.Now().UTC()
			upd.PublishedAt = &now
		}
	}
	if in.Image != nil {
		imageURL, err := s.store.Upload(ctx, in.Image.Name, in.Image.ContentType, in.Image.Data)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInternal, "upload.failed", err)
		}
		upd.Image = &imageURL
	}

	n, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, notFoundAs(err, "news.not_found")
	}
	s.attachAuthor(ctx, n)
	return n, nil
}

// Delete removes the document only. The media object it referenced stays in
// the store; see the storage-leak note in DESIGN.md.
func (s *NewsService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundAs(err, "news.not_found")
	}
	return nil
}

func (s *NewsService) ToggleFeatured(ctx context.Context, id string) (*models.News, error) {
	n, err := s.repo.ToggleFeatured(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "news.not_found")
	}
	s.attachAuthor(ctx, n)
	return n, nil
}

func (s *NewsService) attachAuthors(ctx context.Context, items []models.News) error {
	ids := make([]primitive.ObjectID, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].AuthorID)
	}
	authors, err := resolveAuthors(ctx, s.users, ids)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Author = authors[items[i].AuthorID]
	}
	return nil
}

func (s *NewsService) attachAuthor(ctx context.Context, n *models.News) {
	authors, err := resolveAuthors(ctx, s.users, []primitive.ObjectID{n.AuthorID})
	if err != nil {
		s.log.Warn("author lookup failed", zap.Error(err))
		return
	}
	n.Author = authors[n.AuthorID]
}

func normalizeCategory(category string, allowed []string, def string) (string, error) {
	if category == "" {
		return def, nil
	}
	if !slices.Contains(allowed, category) {
		return "", apperror.New(apperror.KindValidation, "common.invalid_body")
	}
	return category, nil
}
