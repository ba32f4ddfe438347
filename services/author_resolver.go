package services

import (
	"context"
	"errors"

	"wp-importer/config"
	"wp-importer/repositories"
)

// AuthorLookup reads the users_migration mapping.
type AuthorLookup interface {
	FindUserIDByExternalID(ctx context.Context, externalID string) (string, error)
}

// AuthorResolution is the Ghost author a post is attributed to.
type AuthorResolution struct {
	AuthorID string
	// Fallback is set when the external author had no mapping and the
	// default author was used instead.
	Fallback bool
}

// AuthorResolver maps WordPress author ids to Ghost user ids. Unmapped
// authors are attributed to a fixed default author so that imports never
// stall on legacy accounts that were not migrated.
type AuthorResolver struct {
	fallbackID string
}

func NewAuthorResolver(fallbackID string) *AuthorResolver {
	return &AuthorResolver{fallbackID: fallbackID}
}

// Resolve never fails; lookup misses and lookup errors both fall back.
func (r *AuthorResolver) Resolve(ctx context.Context, lookup AuthorLookup, externalID string) AuthorResolution {
	userID, err := lookup.FindUserIDByExternalID(ctx, externalID)
	if err == nil {
		return AuthorResolution{AuthorID: userID}
	}

	fields := config.Fields{
		"external_author_id": externalID,
		"fallback_author_id": r.fallbackID,
	}
	if errors.Is(err, repositories.ErrNotFound) {
		config.WarnWithFields("author mapping miss, using fallback author", fields)
	} else {
		fields["error"] = err.Error()
		config.ErrorWithFields("author mapping lookup failed, using fallback author", fields)
	}
	return AuthorResolution{AuthorID: r.fallbackID, Fallback: true}
}
