package util

import (
	"math"
	"strconv"

	"github.com/Skotchmaster/aura_shop/internal/transport"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Calculate clamps page and size and returns the row offset and limit.
// The page is capped so that offset+limit still fits in an int.
func Calculate(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if maxPage := (math.MaxInt-size)/size + 1; page > maxPage {
		page = maxPage
	}
	return (page - 1) * size, size
}

func Meta(page, offset, limit int, total int64) transport.PageMeta {
	if page < 1 {
		page = 1
	}
	return transport.PageMeta{
		Page:       page,
		Size:       limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
		HasPrev:    page > 1,
		HasNext:    int64(offset+limit) < total,
	}
}
