package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/avishek100/metmanichaudhary/internal/models"
	"github.com/avishek100/metmanichaudhary/internal/repository"
)

// In-memory repositories mirroring the mongo semantics the services rely on.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) add(u *models.User) *models.User {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return fmt.Errorf("duplicate email %s", u.Email)
		}
	}
	r.add(u)
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	u, ok := r.users[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	out := make(map[primitive.ObjectID]*models.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			cp := *u
			out[id] = &cp
		}
	}
	return out, nil
}

func (r *fakeUserRepo) List(_ context.Context, page, limit int) ([]models.User, int64, error) {
	all := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return pageSlice(all, page, limit), int64(len(all)), nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) SetLastLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	if u, ok := r.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (r *fakeUserRepo) SetRole(_ context.Context, id string, role models.Role) (*models.User, error) {
	u, err := r.find(id)
	if err != nil {
		return nil, err
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) ToggleActive(_ context.Context, id string) (*models.User, error) {
	u, err := r.find(id)
	if err != nil {
		return nil, err
	}
	u.IsActive = !u.IsActive
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	u, err := r.find(id)
	if err != nil {
		return err
	}
	delete(r.users, u.ID)
	return nil
}

func (r *fakeUserRepo) find(id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	u, ok := r.users[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

type fakeNewsRepo struct {
	items map[primitive.ObjectID]*models.News
	seq   int
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{items: make(map[primitive.ObjectID]*models.News)}
}

func (r *fakeNewsRepo) Insert(_ context.Context, n *models.News) error {
	n.ID = primitive.NewObjectID()
	r.seq++
	// spread creation times so the newest-first ordering is deterministic
	now := time.Now().UTC().Add(time.Duration(r.seq) * time.Millisecond)
	n.CreatedAt = now
	n.UpdatedAt = now
	cp := *n
	r.items[n.ID] = &cp
	return nil
}

func (r *fakeNewsRepo) Find(_ context.Context, f repository.NewsFilter, page, limit int) ([]models.News, int64, error) {
	matched := []models.News{}
	for _, n := range r.items {
		if f.Status != "" && n.Status != f.Status {
			continue
		}
		if f.Category != "" && n.Category != f.Category {
			continue
		}
		if f.Featured != nil && n.Featured != *f.Featured {
			continue
		}
		matched = append(matched, *n)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return pageSlice(matched, page, limit), int64(len(matched)), nil
}

func (r *fakeNewsRepo) FindByID(_ context.Context, id string) (*models.News, error) {
	n, err := r.find(id)
	if err != nil {
		return nil, err
	}
	cp := *n
	return &cp, nil
}

func (r *fakeNewsRepo) IncViews(_ context.Context, id string) (*models.News, error) {
	n, err := r.find(id)
	if err != nil {
		return nil, err
	}
	n.Views++
	cp := *n
	return &cp, nil
}

func (r *fakeNewsRepo) Update(_ context.Context, id string, upd repository.NewsUpdate) (*models.News, error) {
	n, err := r.find(id)
	if err != nil {
		return nil, err
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&n.Title, upd.Title)
	apply(&n.TitleHindi, upd.TitleHindi)
	apply(&n.Description, upd.Description)
	apply(&n.DescriptionHindi, upd.DescriptionHindi)
	apply(&n.Content, upd.Content)
	apply(&n.ContentHindi, upd.ContentHindi)
	apply(&n.Category, upd.Category)
	apply(&n.Image, upd.Image)
	if upd.Status != nil {
		n.Status = *upd.Status
	}
	if upd.PublishedAt != nil {
		t := *upd.PublishedAt
		n.PublishedAt = &t
	}
	n.UpdatedAt = time.Now().UTC()
	cp := *n
	return &cp, nil
}

func (r *fakeNewsRepo) Delete(_ context.Context, id string) error {
	n, err := r.find(id)
	if err != nil {
		return err
	}
	delete(r.items, n.ID)
	return nil
}

func (r *fakeNewsRepo) ToggleFeatured(_ context.Context, id string) (*models.News, error) {
	n, err := r.find(id)
	if err != nil {
		return nil, err
	}
	n.Featured = !n.Featured
	cp := *n
	return &cp, nil
}

func (r *fakeNewsRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeNewsRepo) CountByStatus(_ context.Context, s models.Status) (int64, error) {
	var count int64
	for _, n := range r.items {
		if n.Status == s {
			count++
		}
	}
	return count, nil
}

func (r *fakeNewsRepo) SumViews(_ context.Context) (int64, error) {
	var total int64
	for _, n := range r.items {
		total += n.Views
	}
	return total, nil
}

func (r *fakeNewsRepo) FindRecent(ctx context.Context, n int) ([]models.News, error) {
	items, _, err := r.Find(ctx, repository.NewsFilter{}, 1, n)
	return items, err
}

func (r *fakeNewsRepo) find(id string) (*models.News, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	n, ok := r.items[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return n, nil
}

type fakePhotoRepo struct {
	items map[primitive.ObjectID]*models.Photo
	seq   int
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{items: make(map[primitive.ObjectID]*models.Photo)}
}

func (r *fakePhotoRepo) Insert(_ context.Context, p *models.Photo) error {
	p.ID = primitive.NewObjectID()
	r.seq++
	now := time.Now().UTC().Add(time.Duration(r.seq) * time.Millisecond)
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakePhotoRepo) Find(_ context.Context, f repository.PhotoFilter, page, limit int) ([]models.Photo, int64, error) {
	matched := []models.Photo{}
	for _, p := range r.items {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Album != "" && p.Album != f.Album {
			continue
		}
		if f.Featured != nil && p.Featured != *f.Featured {
			continue
		}
		matched = append(matched, *p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return pageSlice(matched, page, limit), int64(len(matched)), nil
}

func (r *fakePhotoRepo) FindByID(_ context.Context, id string) (*models.Photo, error) {
	p, err := r.find(id)
	if err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

func (r *fakePhotoRepo) IncViews(_ context.Context, id string) (*models.Photo, error) {
	p, err := r.find(id)
	if err != nil {
		return nil, err
	}
	p.Views++
	cp := *p
	return &cp, nil
}

func (r *fakePhotoRepo) Update(_ context.Context, id string, upd repository.PhotoUpdate) (*models.Photo, error) {
	p, err := r.find(id)
	if err != nil {
		return nil, err
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&p.Title, upd.Title)
	apply(&p.TitleHindi, upd.TitleHindi)
	apply(&p.Description, upd.Description)
	apply(&p.DescriptionHindi, upd.DescriptionHindi)
	apply(&p.Album, upd.Album)
	apply(&p.Image, upd.Image)
	apply(&p.Thumbnail, upd.Thumbnail)
	if upd.Tags != nil {
		p.Tags = *upd.Tags
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.PublishedAt != nil {
		t := *upd.PublishedAt
		p.PublishedAt = &t
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (r *fakePhotoRepo) Delete(_ context.Context, id string) error {
	p, err := r.find(id)
	if err != nil {
		return err
	}
	delete(r.items, p.ID)
	return nil
}

func (r *fakePhotoRepo) ToggleFeatured(_ context.Context, id string) (*models.Photo, error) {
	p, err := r.find(id)
	if err != nil {
		return nil, err
	}
	p.Featured = !p.Featured
	cp := *p
	return &cp, nil
}

func (r *fakePhotoRepo) Albums(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	albums := []string{}
	for _, p := range r.items {
		if !seen[p.Album] {
			seen[p.Album] = true
			albums = append(albums, p.Album)
		}
	}
	sort.Strings(albums)
	return albums, nil
}

func (r *fakePhotoRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakePhotoRepo) CountByStatus(_ context.Context, s models.Status) (int64, error) {
	var count int64
	for _, p := range r.items {
		if p.Status == s {
			count++
		}
	}
	return count, nil
}

func (r *fakePhotoRepo) SumViews(_ context.Context) (int64, error) {
	var total int64
	for _, p := range r.items {
		total += p.Views
	}
	return total, nil
}

func (r *fakePhotoRepo) find(id string) (*models.Photo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	p, ok := r.items[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

type fakeVideoRepo struct {
	items map[primitive.ObjectID]*models.Video
	seq   int
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{items: make(map[primitive.ObjectID]*models.Video)}
}

func (r *fakeVideoRepo) Insert(_ context.Context, v *models.Video) error {
	v.ID = primitive.NewObjectID()
	r.seq++
	now := time.Now().UTC().Add(time.Duration(r.seq) * time.Millisecond)
	v.CreatedAt = now
	v.UpdatedAt = now
	cp := *v
	r.items[v.ID] = &cp
	return nil
}

func (r *fakeVideoRepo) Find(_ context.Context, f repository.VideoFilter, page, limit int) ([]models.Video, int64, error) {
	matched := []models.Video{}
	for _, v := range r.items {
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		if f.Category != "" && v.Category != f.Category {
			continue
		}
		if f.Featured != nil && v.Featured != *f.Featured {
			continue
		}
		matched = append(matched, *v)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return pageSlice(matched, page, limit), int64(len(matched)), nil
}

func (r *fakeVideoRepo) FindByID(_ context.Context, id string) (*models.Video, error) {
	v, err := r.find(id)
	if err != nil {
		return nil, err
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVideoRepo) IncViews(_ context.Context, id string) (*models.Video, error) {
	v, err := r.find(id)
	if err != nil {
		return nil, err
	}
	v.Views++
	cp := *v
	return &cp, nil
}

func (r *fakeVideoRepo) Update(_ context.Context, id string, upd repository.VideoUpdate) (*models.Video, error) {
	v, err := r.find(id)
	if err != nil {
		return nil, err
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&v.Title, upd.Title)
	apply(&v.TitleHindi, upd.TitleHindi)
	apply(&v.Description, upd.Description)
	apply(&v.DescriptionHindi, upd.DescriptionHindi)
	apply(&v.VideoURL, upd.VideoURL)
	apply(&v.VideoFile, upd.VideoFile)
	apply(&v.Thumbnail, upd.Thumbnail)
	apply(&v.Category, upd.Category)
	if upd.Duration != nil {
		v.Duration = *upd.Duration
	}
	if upd.Tags != nil {
		v.Tags = *upd.Tags
	}
	if upd.Status != nil {
		v.Status = *upd.Status
	}
	if upd.PublishedAt != nil {
		t := *upd.PublishedAt
		v.PublishedAt = &t
	}
	v.UpdatedAt = time.Now().UTC()
	cp := *v
	return &cp, nil
}

func (r *fakeVideoRepo) Delete(_ context.Context, id string) error {
	v, err := r.find(id)
	if err != nil {
		return err
	}
	delete(r.items, v.ID)
	return nil
}

func (r *fakeVideoRepo) ToggleFeatured(_ context.Context, id string) (*models.Video, error) {
	v, err := r.find(id)
	if err != nil {
		return nil, err
	}
	v.Featured = !v.Featured
	cp := *v
	return &cp, nil
}

func (r *fakeVideoRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeVideoRepo) CountByStatus(_ context.Context, s models.Status) (int64, error) {
	var count int64
	for _, v := range r.items {
		if v.Status == s {
			count++
		}
	}
	return count, nil
}

func (r *fakeVideoRepo) SumViews(_ context.Context) (int64, error) {
	var total int64
	for _, v := range r.items {
		total += v.Views
	}
	return total, nil
}

func (r *fakeVideoRepo) find(id string) (*models.Video, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	v, ok := r.items[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

// fakeStore records what was uploaded and hands back deterministic URLs.
type fakeStore struct {
	uploads []string
	fail    bool
}

func (s *fakeStore) Upload(_ context.Context, filename, _ string, _ []byte) (string, error) {
	if s.fail {
		return "", fmt.Errorf("store unavailable")
	}
	s.uploads = append(s.uploads, filename)
	return "https://cdn.test/" + filename, nil
}

func pageSlice[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
