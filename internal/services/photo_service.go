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

type PhotoService struct {
	repo  repository.PhotoRepository
	users repository.UserRepository
	store storage.Store
	log   *zap.Logger
}

func NewPhotoService(repo repository.PhotoRepository, users repository.UserRepository, store storage.Store, log *zap.Logger) *PhotoService {
	return &PhotoService{repo: repo, users: users, store: store, log: log}
}

type CreatePhotoInput struct {
	Title            string
	TitleHindi       string
	Description      string
	DescriptionHindi string
	Album            string
	Tags             []string
	Status           models.Status
	Image            *storage.File
}

type UpdatePhotoInput struct {
	Title            *string
	TitleHindi       *string
	Description      *string
	DescriptionHindi *string
	Album            *string
	Tags             *[]string
	Status           *models.Status
	PublishedAt      *time.Time
	Image            *storage.File
}

type PhotoPage struct {
	Items       []models.Photo
	Total       int64
	TotalPages  int
	CurrentPage int
}

func (s *PhotoService) Create(ctx context.Context, authorID primitive.ObjectID, in CreatePhotoInput) (*models.Photo, error) {
	if in.Title == "" || in.Image == nil || in.Album == "" {
		return nil, apperror.New(apperror.KindValidation, "photo.required_fields")
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}

	imageURL, thumbURL, err := s.uploadWithThumbnail(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	p := &models.Photo{
		Title:            in.Title,
		TitleHindi:       in.TitleHindi,
		Description:      in.Description,
		DescriptionHindi: in.DescriptionHindi,
		Image:            imageURL,
		Thumbnail:        thumbURL,
		Album:            in.Album,
		AuthorID:         authorID,
		Status:           status,
		Tags:             in.Tags,
	}
	if status == models.StatusPublished {
		now := time.Now().UTC()
		p.PublishedAt = &now
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}
	s.attachAuthor(ctx, p)
	return p, nil
}

func (s *PhotoService) List(ctx context.Context, f repository.PhotoFilter, page, limit int) (*PhotoPage, error) {
	page, limit = normalizePage(page, limit, 20)
	items, total, err := s.repo.Find(ctx, f, page, limit)
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthors(ctx, items); err != nil {
		return nil, err
	}
	return &PhotoPage{
		Items:       items,
		Total:       total,
		TotalPages:  repository.TotalPages(total, limit),
		CurrentPage: page,
	}, nil
}

func (s *PhotoService) Get(ctx context.Context, id string) (*models.Photo, error) {
	p, err := s.repo.IncViews(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "photo.not_found")
	}
	s.attachAuthor(ctx, p)
	return p, nil
}

func (s *PhotoService) Update(ctx context.Context, id string, in UpdatePhotoInput) (*models.Photo, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "photo.not_found")
	}

	upd := repository.PhotoUpdate{
		Title:            in.Title,
		TitleHindi:       in.TitleHindi,
		Description:      in.Description,
		DescriptionHindi: in.DescriptionHindi,
		Album:            in.Album,
		Tags:             in.Tags,
		PublishedAt:      in.PublishedAt,
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
	if in.Image != nil {
		imageURL, thumbURL, err := s.uploadWithThumbnail(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		upd.Image = &imageURL
		upd.Thumbnail = &thumbURL
	}

	p, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, notFoundAs(err, "photo.not_found")
	}
	s.attachAuthor(ctx, p)
	return p, nil
}

func (s *PhotoService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundAs(err, "photo.not_found")
	}
	return nil
}

func (s *PhotoService) ToggleFeatured(ctx context.Context, id string) (*models.Photo, error) {
	p, err := s.repo.ToggleFeatured(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "photo.not_found")
	}
	s.attachAuthor(ctx, p)
	return p, nil
}

func (s *PhotoService) Albums(ctx context.Context) ([]string, error) {
	return s.repo.Albums(ctx)
}

// uploadWithThumbnail stores the original and, when it decodes as an image,
// a 320px preview next to it. A failed thumbnail never fails the upload.
func (s *PhotoService) uploadWithThumbnail(ctx context.Context, f *storage.File) (string, string, error) {
	imageURL, err := s.store.Upload(ctx, f.Name, f.ContentType, f.Data)
	if err != nil {
		return "", "", apperror.Wrap(apperror.KindInternal, "upload.failed", err)
	}
	thumbURL := ""
	if thumb, err := storage.Thumbnail(f.Data); err == nil {
		thumbURL, err = s.store.Upload(ctx, "thumb_"+f.Name+".jpg", "image/jpeg", thumb)
		if err != nil {
			s.log.Warn("thumbnail upload failed", zap.Error(err))
			thumbURL = ""
		}
	}
	return imageURL, thumbURL, nil
}

func (s *PhotoService) attachAuthors(ctx context.Context, items []models.Photo) error {
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

func (s *PhotoService) attachAuthor(ctx context.Context, p *models.Photo) {
	authors, err := resolveAuthors(ctx, s.users, []primitive.ObjectID{p.AuthorID})
	if err != nil {
		s.log.Warn("author lookup failed", zap.Error(err))
		return
	}
	p.Author = authors[p.AuthorID]
}
