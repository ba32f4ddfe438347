package services

import (
	"context"
	"errors"
	"strings"

	"wp-importer/config"
	"wp-importer/repositories"
)

// TagLookup reads tags by slug.
type TagLookup interface {
	FindIDBySlug(ctx context.Context, slug string) (string, error)
}

// SplitTagLabels splits the comma-joined tag field of a post. Labels are not
// trimmed, and an empty field still yields one (empty) label.
func SplitTagLabels(raw string) []string {
	return strings.Split(raw, ",")
}

// TagResolver finds existing tags by slug. It never creates tags.
type TagResolver struct{}

func NewTagResolver() *TagResolver {
	return &TagResolver{}
}

// Resolve returns the tag id for label, or false when no tag has that slug.
// Lookup errors are treated as misses.
func (r *TagResolver) Resolve(ctx context.Context, lookup TagLookup, label string) (string, bool) {
	id, err := lookup.FindIDBySlug(ctx, label)
	if err == nil {
		return id, true
	}

	fields := config.Fields{"slug": label}
	if errors.Is(err, repositories.ErrNotFound) {
		config.WarnWithFields("tag not found, skipping", fields)
	} else {
		fields["error"] = err.Error()
		config.ErrorWithFields("tag lookup failed, skipping", fields)
	}
	return "", false
}
