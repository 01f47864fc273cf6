package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/avishek100/metmanichaudhary/internal/apperror"
	"github.com/avishek100/metmanichaudhary/internal/models"
	"github.com/avishek100/metmanichaudhary/internal/repository"
)

type AdminService struct {
	users  repository.UserRepository
	news   repository.NewsRepository
	photos repository.PhotoRepository
	videos repository.VideoRepository
	log    *zap.Logger
}

func NewAdminService(users repository.UserRepository, news repository.NewsRepository, photos repository.PhotoRepository, videos repository.VideoRepository, log *zap.Logger) *AdminService {
	return &AdminService{users: users, news: news, photos: photos, videos: videos, log: log}
}

// DashboardStats is the read-only rollup behind the admin dashboard. Field
// names match what the admin console consumes.
type DashboardStats struct {
	TotalUsers      int64         `json:"totalUsers"`
	TotalNews       int64         `json:"totalNews"`
	TotalPhotos     int64         `json:"totalPhotos"`
	TotalVideos     int64         `json:"totalVideos"`
	PublishedNews   int64         `json:"publishedNews"`
	PublishedPhotos int64         `json:"publishedPhotos"`
	PublishedVideos int64         `json:"publishedVideos"`
	TotalNewsViews  int64         `json:"totalNewsViews"`
	TotalPhotoViews int64         `json:"totalPhotoViews"`
	TotalVideoViews int64         `json:"totalVideoViews"`
	RecentNews      []models.News `json:"recentNews"`
}

// Stats recomputes the rollup on every call; nothing is cached and nothing
// is written.
func (s *AdminService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalNews, err = s.news.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalPhotos, err = s.photos.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalVideos, err = s.videos.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PublishedNews, err = s.news.CountByStatus(ctx, models.StatusPublished); err != nil {
		return nil, err
	}
	if stats.PublishedPhotos, err = s.photos.CountByStatus(ctx, models.StatusPublished); err != nil {
		return nil, err
	}
	if stats.PublishedVideos, err = s.videos.CountByStatus(ctx, models.StatusPublished); err != nil {
		return nil, err
	}
	if stats.TotalNewsViews, err = s.news.SumViews(ctx); err != nil {
		return nil, err
	}
	if stats.TotalPhotoViews, err = s.photos.SumViews(ctx); err != nil {
		return nil, err
	}
	if stats.TotalVideoViews, err = s.videos.SumViews(ctx); err != nil {
		return nil, err
	}

	recent, err := s.news.FindRecent(ctx, 5)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(recent))
	for i := range recent {
		ids = append(ids, recent[i].AuthorID)
	}
	authors, err := resolveAuthors(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}
	for i := range recent {
		recent[i].Author = authors[recent[i].AuthorID]
	}
	stats.RecentNews = recent
	return stats, nil
}

type UserPage struct {
	Items       []models.User
	Total       int64
	TotalPages  int
	CurrentPage int
}

func (s *AdminService) ListUsers(ctx context.Context, page, limit int) (*UserPage, error) {
	page, limit = normalizePage(page, limit, 10)
	users, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &UserPage{
		Items:       users,
		Total:       total,
		TotalPages:  repository.TotalPages(total, limit),
		CurrentPage: page,
	}, nil
}

// UpdateUserRole assigns a role. Nothing prevents an admin demoting
// themselves or removing the last admin; that matches the admin console's
// current contract.
func (s *AdminService) UpdateUserRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, apperror.New(apperror.KindValidation, "user.invalid_role")
	}
	u, err := s.users.SetRole(ctx, id, role)
	if err != nil {
		return nil, notFoundAs(err, "user.not_found")
	}
	return u, nil
}

func (s *AdminService) ToggleUserStatus(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.ToggleActive(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "user.not_found")
	}
	return u, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return notFoundAs(err, "user.not_found")
	}
	return nil
}
