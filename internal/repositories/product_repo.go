package repositories

import (
	"errors"

	"vitrina/internal/models"
)

// ErrNotFound is returned by any repository operation that references a
// product ID that does not exist.
var ErrNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}
