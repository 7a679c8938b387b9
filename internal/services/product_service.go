package services

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"store_manager/internal/apperrors"
	"store_manager/internal/logger"
	"store_manager/internal/models"
	"store_manager/internal/redis"
	"store_manager/internal/repository"
)

type ProductService interface {
	CreateProduct(product *models.Product) error
	GetProductByID(id uint) (*models.Product, error)
	GetAllProducts() ([]models.Product, error)
	UpdateProduct(product *models.Product) error
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	log         *logrus.Logger
}

// NewProductService creates a product service. cache may be nil; reads then
// always hit the database.
func NewProductService(productRepo repository.ProductRepository, cache *redis.Client, cacheTTL time.Duration) ProductService {
	return &productService{productRepo: productRepo, cache: cache, cacheTTL: cacheTTL, log: logger.Get()}
}

func (s *productService) CreateProduct(product *models.Product) error {
	if product.Name == "" {
		return &apperrors.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if product.UnitPrice.IsNegative() {
		return &apperrors.ValidationError{Field: "unit_price", Reason: "must not be negative"}
	}
	if product.Stock < 0 {
		return &apperrors.ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	return s.productRepo.Create(product)
}

func (s *productService) GetProductByID(id uint) (*models.Product, error) {
	if s.cache != nil {
		if product, err := s.cache.GetProduct(id); err == nil {
			return product, nil
		}
		// Cache errors degrade to a database read.
	}

	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "product", ID: id}
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetProduct(product, s.cacheTTL); err != nil {
			s.log.WithFields(logrus.Fields{"product_id": id}).Warn("failed to cache product: ", err)
		}
	}
	return product, nil
}

func (s *productService) GetAllProducts() ([]models.Product, error) {
	return s.productRepo.GetAll()
}

func (s *productService) UpdateProduct(product *models.Product) error {
	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateProduct(product.ID); err != nil {
			s.log.WithFields(logrus.Fields{"product_id": product.ID}).Warn("failed to invalidate product cache: ", err)
		}
	}
	return nil
}

func (s *productService) DeleteProduct(id uint) error {
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateProduct(id); err != nil {
			s.log.WithFields(logrus.Fields{"product_id": id}).Warn("failed to invalidate product cache: ", err)
		}
	}
	return nil
}
