package services

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"vitrina/internal/models"
	"vitrina/internal/repositories"
	"vitrina/pkg/events"
)

// EventPublisher publishes product mutation events. The service tolerates a
// nil publisher, so running without a broker is supported.
type EventPublisher interface {
	PublishProductEvent(eventType string, product models.Product) error
}

// ProductService handles business logic related to products: entity-level
// validation on writes and event publishing on mutations.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	validate  *validator.Validate
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates and creates a new product. The repository assigns
// the ID on the passed struct.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("invalid product: %w", err)
	}
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publish(events.TypeProductCreated, *product)
	return nil
}

// UpdateProduct validates and replaces an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("invalid product: %w", err)
	}
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish(events.TypeProductDeleted, *product)
	return nil
}

func (s *ProductService) publish(eventType string, product models.Product) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(eventType, product); err != nil {
		// Event delivery is best-effort; the mutation already happened.
		log.Printf("Failed to publish %s event for product %d: %v", eventType, product.ID, err)
	}
}
