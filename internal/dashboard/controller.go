// Package dashboard holds the console's UI-facing state and orchestrates the
// user-triggered workflows: load, create, delete with confirmation, and
// database reset.
package dashboard

import (
	"context"
	"log"

	"github.com/go-playground/validator/v10"

	"vitrina/internal/client"
	"vitrina/internal/models"
)

// Fixed user-facing strings. The catalog is Chilean, so these are Spanish;
// diagnostics in the log stay English.
const (
	MsgLoadFailed    = "No se pudieron cargar los productos."
	MsgCreateFailed  = "No se pudo crear el producto."
	MsgDeleteFailed  = "No se pudo eliminar el producto."
	MsgResetFailed   = "No se pudo restablecer la base de datos."
	MsgInvalidDelete = "Producto no válido para eliminar."

	// ResetWarning is shown verbatim before a reset is confirmed.
	ResetWarning = "¿Está seguro? Se eliminarán todos los productos y se restaurarán los datos de fábrica."
)

// CreateForm carries the create dialog's fields with the form-level
// validation rules. These are stricter than the entity rules on
// models.Product (price >= 100 vs >= 1, stock >= 1 vs >= 0) on purpose:
// the form shapes what a user may enter, the entity rules are the API
// contract, and the two are allowed to diverge.
type CreateForm struct {
	Name  string  `validate:"required,min=2"`
	Price float64 `validate:"gte=100"`
	Stock int     `validate:"gte=1"`
}

// UI is the surface the controller signals dialogs through. A nil UI means
// there is no interactive display context and dialog signalling is skipped.
type UI interface {
	PresentCreateDialog()
	DismissCreateDialog()
	PresentDeleteConfirm(id uint)
	DismissDeleteConfirm()
	// ConfirmReset shows the warning and reports whether the user accepted.
	ConfirmReset(warning string) bool
}

// Controller owns the dashboard state. It is driven from a single event
// loop; none of its methods are safe for concurrent use.
type Controller struct {
	api      client.ProductAPI
	ui       UI
	validate *validator.Validate

	products        []models.Product
	isLoading       bool
	errorMessage    string
	pendingDeleteID uint
	form            CreateForm
}

// NewController creates a Controller. ui may be nil when no interactive
// display context exists.
func NewController(api client.ProductAPI, ui UI) *Controller {
	return &Controller{
		api:      api,
		ui:       ui,
		validate: validator.New(),
		products: []models.Product{},
	}
}

// Products returns the current product list in backend order.
func (c *Controller) Products() []models.Product { return c.products }

// IsLoading reports whether a load, delete or reset is in flight.
func (c *Controller) IsLoading() bool { return c.isLoading }

// ErrorMessage returns the current user-facing error, empty when none.
func (c *Controller) ErrorMessage() string { return c.errorMessage }

// PendingDeleteID returns the delete target awaiting confirmation, 0 when none.
func (c *Controller) PendingDeleteID() uint { return c.pendingDeleteID }

// Form returns the create form's current values.
func (c *Controller) Form() CreateForm { return c.form }

// SetForm replaces the create form's values, as the UI binds fields.
func (c *Controller) SetForm(form CreateForm) { c.form = form }

// ValidateForm checks the create form against the form-level rules so the
// UI can surface field errors. Returns validator.ValidationErrors on failure.
func (c *Controller) ValidateForm() error {
	return c.validate.Struct(c.form)
}

// Initialize performs the one-time startup work: the initial product load.
func (c *Controller) Initialize(ctx context.Context) {
	c.LoadProducts(ctx)
}

// LoadProducts replaces the product list from the backend. On failure the
// list is left untouched and a fixed error message is set.
func (c *Controller) LoadProducts(ctx context.Context) {
	c.isLoading = true
	c.errorMessage = ""

	products, err := c.api.List(ctx)
	if err != nil {
		log.Printf("Error loading products: %v", err)
		c.errorMessage = MsgLoadFailed
		c.isLoading = false
		return
	}
	c.products = products
	c.isLoading = false
}

// OpenCreateForm clears the form and presents the create dialog. Without an
// interactive display context this is a no-op.
func (c *Controller) OpenCreateForm() {
	if c.ui == nil {
		return
	}
	c.form = CreateForm{}
	c.ui.PresentCreateDialog()
}

// CloseCreateForm clears the form and dismisses the create dialog.
// Dismissing an already-dismissed dialog is the UI's problem to absorb.
func (c *Controller) CloseCreateForm() {
	c.form = CreateForm{}
	if c.ui != nil {
		c.ui.DismissCreateDialog()
	}
}

// SubmitCreate sends the form to the backend. An invalid form is a silent
// no-op: no network call, no state change — surfacing field errors is the
// UI's job, via ValidateForm. On success the created product is appended
// and the dialog closed; on failure the dialog stays open so the user can
// correct and retry.
func (c *Controller) SubmitCreate(ctx context.Context) {
	if err := c.ValidateForm(); err != nil {
		return
	}

	created, err := c.api.Create(ctx, models.Product{
		Name:  c.form.Name,
		Price: c.form.Price,
		Stock: c.form.Stock,
	})
	if err != nil {
		log.Printf("Error creating product: %v", err)
		c.errorMessage = MsgCreateFailed
		return
	}
	c.products = append(c.products, *created)
	c.CloseCreateForm()
}

// RequestDelete records the delete target and asks the UI to confirm. An
// absent id (0) is rejected with an error message and no dialog.
func (c *Controller) RequestDelete(id uint) {
	if id == 0 {
		c.errorMessage = MsgInvalidDelete
		return
	}
	c.pendingDeleteID = id
	if c.ui != nil {
		c.ui.PresentDeleteConfirm(id)
	}
}

// ConfirmDelete deletes the pending target. A no-op when nothing is
// pending. The pending target is discarded whether the call succeeds or
// fails; there is no retry.
func (c *Controller) ConfirmDelete(ctx context.Context) {
	if c.pendingDeleteID == 0 {
		return
	}
	id := c.pendingDeleteID

	c.isLoading = true
	c.errorMessage = ""
	if c.ui != nil {
		c.ui.DismissDeleteConfirm()
	}

	if err := c.api.Delete(ctx, id); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		c.errorMessage = MsgDeleteFailed
		c.isLoading = false
		c.pendingDeleteID = 0
		return
	}

	kept := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.products = kept
	c.isLoading = false
	c.pendingDeleteID = 0
}

// CancelDelete dismisses the confirmation dialog and forgets the pending
// target. No network call is made.
func (c *Controller) CancelDelete() {
	if c.ui != nil {
		c.ui.DismissDeleteConfirm()
	}
	c.pendingDeleteID = 0
}

// ResetDatabase restores the backend to the seed catalog, after an explicit
// yes/no confirmation with a literal warning. Without an interactive
// display context no confirmation can be given, so nothing happens.
func (c *Controller) ResetDatabase(ctx context.Context) {
	if c.ui == nil || !c.ui.ConfirmReset(ResetWarning) {
		return
	}

	c.isLoading = true
	c.errorMessage = ""

	products, err := c.api.Reset(ctx)
	if err != nil {
		log.Printf("Error resetting database: %v", err)
		c.errorMessage = MsgResetFailed
		c.isLoading = false
		return
	}
	c.products = products
	c.errorMessage = ""
	c.isLoading = false
}

// IdentityKey stabilizes list-item identity for the rendering layer: the
// product's id when assigned, the list index otherwise.
func (c *Controller) IdentityKey(index int, product models.Product) int {
	if product.ID != 0 {
		return int(product.ID)
	}
	return index
}
