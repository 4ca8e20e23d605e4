package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"social-service/internal/models"
	"social-service/internal/repository"
)

// summariesByID resolves author references in one batched lookup, the moral
// equivalent of the store's populate.
func summariesByID(ctx context.Context, users repository.UserRepository, ids []primitive.ObjectID) (map[string]models.UserSummary, error) {
	seen := make(map[string]bool, len(ids))
	unique := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if !seen[id.Hex()] {
			seen[id.Hex()] = true
			unique = append(unique, id)
		}
	}

	found, err := users.FindManyByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.UserSummary, len(found))
	for i := range found {
		out[found[i].ID.Hex()] = found[i].Summary()
	}
	return out, nil
}
