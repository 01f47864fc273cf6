package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/avishek100/metmanichaudhary/internal/apperror"
	"github.com/avishek100/metmanichaudhary/internal/models"
)

func adminFixture(t *testing.T) (*AdminService, *fakeUserRepo, *fakeNewsRepo, *fakePhotoRepo, *fakeVideoRepo) {
	t.Helper()
	users := newFakeUserRepo()
	news := newFakeNewsRepo()
	photos := newFakePhotoRepo()
	videos := newFakeVideoRepo()
	svc := NewAdminService(users, news, photos, videos, zap.NewNop())
	return svc, users, news, photos, videos
}

func TestAdminStats(t *testing.T) {
	svc, users, news, photos, videos := adminFixture(t)

	author := users.add(&models.User{Name: "Writer", Email: "writer@example.com", Role: models.RoleEditor, IsActive: true})
	users.add(&models.User{Name: "Boss", Email: "boss@example.com", Role: models.RoleAdmin, IsActive: true})

	ctx := context.Background()
	for i := 0; i < 7; i++ {
		n := &models.News{Title: "n", AuthorID: author.ID, Status: models.StatusDraft}
		if i < 3 {
			n.Status = models.StatusPublished
			n.Views = 10
		}
		require.NoError(t, news.Insert(ctx, n))
	}
	require.NoError(t, photos.Insert(ctx, &models.Photo{Title: "p", Album: "a", AuthorID: author.ID, Status: models.StatusPublished, Views: 4}))
	require.NoError(t, videos.Insert(ctx, &models.Video{Title: "v", VideoURL: "u", AuthorID: author.ID, Status: models.StatusDraft, Views: 2}))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(7), stats.TotalNews)
	assert.Equal(t, int64(1), stats.TotalPhotos)
	assert.Equal(t, int64(1), stats.TotalVideos)
	assert.Equal(t, int64(3), stats.PublishedNews)
	assert.Equal(t, int64(1), stats.PublishedPhotos)
	assert.Equal(t, int64(0), stats.PublishedVideos)
	assert.Equal(t, int64(30), stats.TotalNewsViews)
	assert.Equal(t, int64(4), stats.TotalPhotoViews)
	assert.Equal(t, int64(2), stats.TotalVideoViews)

	require.Len(t, stats.RecentNews, 5)
	require.NotNil(t, stats.RecentNews[0].Author)
	assert.Equal(t, "Writer", stats.RecentNews[0].Author.Name)
}

func TestAdminListUsers(t *testing.T) {
	svc, users, _, _, _ := adminFixture(t)
	for i := 0; i < 12; i++ {
		seedUser(t, users, string(rune('a'+i))+"@example.com", "pass1234", models.RoleUser, true)
	}

	page, err := svc.ListUsers(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
}

func TestAdminUpdateUserRole(t *testing.T) {
	svc, users, _, _, _ := adminFixture(t)
	u := seedUser(t, users, "promote@example.com", "pass1234", models.RoleUser, true)

	got, err := svc.UpdateUserRole(context.Background(), u.ID.Hex(), models.RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEditor, got.Role)

	_, err = svc.UpdateUserRole(context.Background(), u.ID.Hex(), "superuser")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.UpdateUserRole(context.Background(), primitive.NewObjectID().Hex(), models.RoleEditor)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestAdminToggleUserStatus(t *testing.T) {
	svc, users, _, _, _ := adminFixture(t)
	u := seedUser(t, users, "flip@example.com", "pass1234", models.RoleEditor, true)

	got, err := svc.ToggleUserStatus(context.Background(), u.ID.Hex())
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	got, err = svc.ToggleUserStatus(context.Background(), u.ID.Hex())
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestAdminDeleteUser(t *testing.T) {
	svc, users, _, _, _ := adminFixture(t)
	u := seedUser(t, users, "gone@example.com", "pass1234", models.RoleUser, true)

	require.NoError(t, svc.DeleteUser(context.Background(), u.ID.Hex()))
	err := svc.DeleteUser(context.Background(), u.ID.Hex())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
