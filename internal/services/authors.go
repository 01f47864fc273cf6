package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/avishek100/metmanichaudhary/internal/models"
	"github.com/avishek100/metmanichaudhary/internal/repository"
)

// resolveAuthors maps author ids to their public identity. Ids whose account
// was deleted are simply absent from the result; callers render them as null.
func resolveAuthors(ctx context.Context, users repository.UserRepository, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Author, error) {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	unique := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	found, err := users.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]*models.Author, len(found))
	for id, u := range found {
		out[id] = &models.Author{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return out, nil
}
