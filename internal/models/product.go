package models

// Product represents a product in the catalog.
//
// ID is assigned by the backend on creation; 0 means the product has not been
// persisted yet, which is why it is omitted from the JSON payload of a create
// request. Prices are Chilean pesos, whole amounts only.
//
// The validate tags carry the entity-level business rules the backend
// enforces. The create form applies stricter rules on top of these (see
// dashboard.CreateForm); the two layers intentionally diverge.
type Product struct {
	ID    uint    `json:"id,omitempty" gorm:"primaryKey"`
	Name  string  `json:"name" validate:"required,min=2,max=100"`
	Price float64 `json:"price" validate:"required,gte=1"`
	Stock int     `json:"stock" validate:"gte=0"`
}
