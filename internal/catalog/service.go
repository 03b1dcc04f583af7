package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/aura_shop/internal/models"
	"github.com/Skotchmaster/aura_shop/internal/transport"
	"github.com/Skotchmaster/aura_shop/pkg/logging"
)

type Repository interface {
	Lister
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	PatchProduct(ctx context.Context, id string, req transport.PatchProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type Indexer interface {
	IndexProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// ProductEvent is the message written to the product events topic.
type ProductEvent struct {
	Type      string `json:"type"`
	ProductID string `json:"productID"`
	Name      string `json:"name,omitempty"`
}

// Service is the admin write side of the catalog. Publisher and Indexer are optional.
type Service struct {
	Repo      Repository
	Publisher Publisher
	Topic     string
	Indexer   Indexer
}

func validate(p models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrValidation)
	}
	return nil
}

func (s *Service) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	p := req.Product()
	if err := validate(p); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateProduct(ctx, &p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.afterWrite(ctx, "product_created", p)
	return &p, nil
}

func (s *Service) PatchProduct(ctx context.Context, id string, req transport.PatchProductRequest) (*models.Product, error) {
	var probe models.Product
	probe.Name = "x"
	req.ApplyTo(&probe)
	if err := validate(probe); err != nil {
		return nil, err
	}

	p, err := s.Repo.PatchProduct(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "product_updated", *p)
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	l := logging.FromContext(ctx).With("svc", "catalog.delete")
	s.publish(ctx, ProductEvent{Type: "product_deleted", ProductID: id})
	if s.Indexer != nil {
		if err := s.Indexer.DeleteProduct(ctx, id); err != nil {
			l.Warn("search_index_delete_failed", "product_id", id, "error", err)
		}
	}
	return nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *Service) afterWrite(ctx context.Context, typ string, p models.Product) {
	l := logging.FromContext(ctx).With("svc", "catalog.write")
	s.publish(ctx, ProductEvent{Type: typ, ProductID: p.ID, Name: p.Name})
	if s.Indexer != nil {
		if err := s.Indexer.IndexProduct(ctx, p); err != nil {
			l.Warn("search_index_failed", "product_id", p.ID, "error", err)
		}
	}
}

func (s *Service) publish(ctx context.Context, ev ProductEvent) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishEvent(ctx, s.Topic, ev.ProductID, ev); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "type", ev.Type, "product_id", ev.ProductID, "error", err)
	}
}
