package search

import (
	"context"
	"strings"

	"github.com/Skotchmaster/aura_shop/internal/models"
	"github.com/Skotchmaster/aura_shop/pkg/logging"
)

type Results struct {
	Total int64            `json:"total"`
	Items []models.Product `json:"products"`
}

type Searcher interface {
	Search(ctx context.Context, q string, from, size int) (Results, error)
}

func sanitizeQuery(q string) string {
	return strings.TrimSpace(q)
}

// SnapshotSource is anything that can hand out the current catalog.
type SnapshotSource interface {
	Products() []models.Product
}

// SnapshotSearcher matches name, description and category case-insensitively
// against the in-memory catalog, keeping catalog order.
type SnapshotSearcher struct {
	Source SnapshotSource
}

func (s SnapshotSearcher) Search(_ context.Context, rawQ string, from, size int) (Results, error) {
	q := strings.ToLower(sanitizeQuery(rawQ))
	if q == "" {
		return Results{Items: []models.Product{}}, nil
	}

	var matched []models.Product
	for _, p := range s.Source.Products() {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			matched = append(matched, p)
		}
	}

	total := int64(len(matched))
	if from < 0 {
		from = 0
	}
	if from >= len(matched) || size <= 0 {
		return Results{Total: total, Items: []models.Product{}}, nil
	}
	end := len(matched)
	if size < end-from {
		end = from + size
	}
	return Results{Total: total, Items: matched[from:end]}, nil
}

// Fallback uses Secondary whenever Primary is missing or fails.
type Fallback struct {
	Primary   Searcher
	Secondary Searcher
}

func (f Fallback) Search(ctx context.Context, q string, from, size int) (Results, error) {
	if f.Primary != nil {
		res, err := f.Primary.Search(ctx, q, from, size)
		if err == nil {
			return res, nil
		}
		logging.FromContext(ctx).Warn("search_primary_failed", "error", err)
	}
	return f.Secondary.Search(ctx, q, from, size)
}
