package order

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/aura_shop/internal/models"
)

type AdminRepository interface {
	ListOrders(ctx context.Context, offset, limit int) (int64, []models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
}

// AdminService backs the order screens behind the admin gate.
type AdminService struct {
	Repo AdminRepository
}

func (s *AdminService) ListOrders(ctx context.Context, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListOrders(ctx, offset, limit)
}

func (s *AdminService) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.Repo.UpdateStatus(ctx, id, status)
}
