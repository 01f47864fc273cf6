package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/avishek100/metmanichaudhary/internal/apperror"
	"github.com/avishek100/metmanichaudhary/internal/models"
	"github.com/avishek100/metmanichaudhary/internal/repository"
	"github.com/avishek100/metmanichaudhary/internal/storage"
)

type VideoService struct {
	repo  repository.VideoRepository
	users repository.UserRepository
	store storage.Store
	log   *zap.Logger
}

func NewVideoService(repo repository.VideoRepository, users repository.UserRepository, store storage.Store, log *zap.Logger) *VideoService {
	return &VideoService{repo: repo, users: users, store: store, log: log}
}

type CreateVideoInput struct {
	Title            string
	TitleHindi       string
	Description      string
	DescriptionHindi string
	VideoURL         string
	Duration         int
	Category         string
	Tags             []string
	Status           models.Status
	File             *storage.File
}

type UpdateVideoInput struct {
	Title            *string
	TitleHindi       *string
	Description      *string
	DescriptionHindi *string
	VideoURL         *string
	Duration         *int
	Category         *string
	Tags             *[]string
	Status           *models.Status
	PublishedAt      *time.Time
	File             *storage.File
}

type VideoPage struct {
	Items       []models.Video
	Total       int64
	TotalPages  int
	CurrentPage int
}

// Create stores a video referenced either by an external URL or an uploaded
// file; at least one of the two is required.
func (s *VideoService) Create(ctx context.Context, authorID primitive.ObjectID, in CreateVideoInput) (*models.Video, error) {
	if in.Title == "" || (in.VideoURL == "" && in.File == nil) {
		return nil, apperror.New(apperror.KindValidation, "video.required_fields")
	}
	category, err := normalizeCategory(in.Category, models.VideoCategories, "other")
	if err != nil {
		return nil, err
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}

	fileURL := ""
	if in.File != nil {
		fileURL, err = s.store.Upload(ctx, in.File.Name, in.File.ContentType, in.File.Data)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInternal, "upload.failed", err)
		}
	}

	v := &models.Video{
		Title:            in.Title,
		TitleHindi:       in.TitleHindi,
		Description:      in.Description,
		DescriptionHindi: in.DescriptionHindi,
		VideoURL:         in.VideoURL,
		VideoFile:        fileURL,
		Duration:         in.Duration,
		Category:         category,
		AuthorID:         authorID,
		Status:           status,
		Tags:             in.Tags,
	}
	if status == models.StatusPublished {
		now := time.Now().UTC()
		v.PublishedAt = &now
	}
	if err := s.repo.Insert(ctx, v); err != nil {
		return nil, err
	}
	s.attachAuthor(ctx, v)
	return v, nil
}

func (s *VideoService) List(ctx context.Context, f repository.VideoFilter, page, limit int) (*VideoPage, error) {
	page, limit = normalizePage(page, limit, 10)
	items, total, err := s.repo.Find(ctx, f, page, limit)
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthors(ctx, items); err != nil {
		return nil, err
	}
	return &VideoPage{
		Items:       items,
		Total:       total,
		TotalPages:  repository.TotalPages(total, limit),
		CurrentPage: page,
	}, nil
}

func (s *VideoService) Get(ctx context.Context, id string) (*models.Video, error) {
	v, err := s.repo.IncViews(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "video.not_found")
	}
	s.attachAuthor(ctx, v)
	return v, nil
}

func (s *VideoService) Update(ctx context.Context, id string, in UpdateVideoInput) (*models.Video, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "video.not_found")
	}

	upd := repository.VideoUpdate{
		Title:            in.Title,
		TitleHindi:       in.TitleHindi,
		Description:      in.Description,
		DescriptionHindi: in.DescriptionHindi,
		VideoURL:         in.VideoURL,
		Duration:         in.Duration,
		Tags:             in.Tags,
		PublishedAt:      in.PublishedAt,
	}
	if in.Category != nil {
		category, err := normalizeCategory(*in.Category, models.VideoCategories, "other")
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
		if status == models.StatusPublished && existing.PublishedAt == nil && in.PublishedAt == nil {
			now := time.Now().UTC()
			upd.PublishedAt = &now
		}
	}
	if in.File != nil {
		fileURL, err := s.store.Upload(ctx, in.File.Name, in.File.ContentType, in.File.Data)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInternal, "upload.failed", err)
		}
		upd.VideoFile = &fileURL
	}

	v, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, notFoundAs(err, "video.not_found")
	}
	s.attachAuthor(ctx, v)
	return v, nil
}

func (s *VideoService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundAs(err, "video.not_found")
	}
	return nil
}

func (s *VideoService) ToggleFeatured(ctx context.Context, id string) (*models.Video, error) {
	v, err := s.repo.ToggleFeatured(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "video.not_found")
	}
	s.attachAuthor(ctx, v)
	return v, nil
}

func (s *VideoService) attachAuthors(ctx context.Context, items []models.Video) error {
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

func (s *VideoService) attachAuthor(ctx context.Context, v *models.Video) {
	authors, err := resolveAuthors(ctx, s.users, []primitive.ObjectID{v.AuthorID})
	if err != nil {
		s.log.Warn("author lookup failed", zap.Error(err))
		return
	}
	v.Author = authors[v.AuthorID]
}
