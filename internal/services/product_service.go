package services

import (
	"fmt"
	"log"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
	"github.com/HITECHSERVICE25/inventory-backend/internal/redis"
	"github.com/HITECHSERVICE25/inventory-backend/internal/repository"
	"github.com/shopspring/decimal"
)

type CreateProductInput struct {
	Name          string          `json:"name"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Price         decimal.Decimal `json:"price"`
	TotalCount    int             `json:"total_count"`
}

type UpdateProductInput struct {
	Name       *string          `json:"name"`
	Price      *decimal.Decimal `json:"price"`
	TotalCount *int             `json:"total_count"`
}

type ProductService interface {
	Create(input CreateProductInput) (*models.Product, error)
	Get(id uint) (*models.Product, error)
	List(offset, limit int) ([]models.Product, int64, error)
	Update(id uint, input UpdateProductInput) (*models.Product, error)
	Delete(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
	cache       *redis.Client
}

func NewProductService(productRepo repository.ProductRepository, cache *redis.Client) ProductService {
	return &productService{productRepo: productRepo, cache: cache}
}

func (s *productService) Create(input CreateProductInput) (*models.Product, error) {
	if input.Name == "" {
		return nil, invalidField("name", "name is required")
	}
	if input.Price.IsNegative() {
		return nil, invalidField("price", "price cannot be negative")
	}
	if input.TotalCount < 0 {
		return nil, invalidField("total_count", "total count cannot be negative")
	}

	product := &models.Product{
		Name:          input.Name,
		UnitOfMeasure: input.UnitOfMeasure,
		Price:         input.Price,
		TotalCount:    input.TotalCount,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *productService) Get(id uint) (*models.Product, error) {
	if cached, ok := s.cache.GetProduct(id); ok {
		return cached, nil
	}

	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	if err := s.cache.SetProduct(product); err != nil {
		log.Printf("Failed to cache product %d: %v", id, err)
	}
	return product, nil
}

func (s *productService) List(offset, limit int) ([]models.Product, int64, error) {
	return s.productRepo.GetAll(offset, limit)
}

func (s *productService) Update(id uint, input UpdateProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, invalidField("name", "name is required")
		}
		product.Name = *input.Name
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, invalidField("price", "price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.TotalCount != nil {
		if *input.TotalCount < product.AllocatedCount {
			return nil, invalidField("total_count", "total count cannot fall below allocated count")
		}
		product.TotalCount = *input.TotalCount
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	s.cache.InvalidateProduct(id)
	return product, nil
}

func (s *productService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to load product: %w", err)
	}
	if product.AllocatedCount > 0 {
		return fmt.Errorf("product %d has %d allocated units: %w", id, product.AllocatedCount, ErrWorkflowConflict)
	}
	if err := s.productRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.cache.InvalidateProduct(id)
	return nil
}
