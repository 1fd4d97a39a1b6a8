package client_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/client"
	"vitrina/internal/models"
	"vitrina/internal/server"
)

// startBackend runs a fresh in-memory backend on a loopback port and
// returns a client pointed at it.
func startBackend(t *testing.T) *client.ProductClient {
	t.Helper()

	app, err := server.New(server.Options{})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		if serveErr := app.Listener(ln); serveErr != nil {
			t.Logf("backend stopped: %v", serveErr)
		}
	}()
	t.Cleanup(func() {
		if err := app.Shutdown(); err != nil {
			t.Logf("backend shutdown: %v", err)
		}
	})

	return client.NewProductClient("http://"+ln.Addr().String(), &http.Client{Timeout: 5 * time.Second})
}

func TestList_EmptyBackendReturnsEmptySlice(t *testing.T) {
	c := startBackend(t)

	products, err := c.List(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestCreateThenListIncludesCreatedProduct(t *testing.T) {
	c := startBackend(t)
	ctx := context.Background()

	created, err := c.Create(ctx, models.Product{Name: "iPhone 15", Price: 849990, Stock: 10})
	require.NoError(t, err)
	assert.NotZero(t, created.ID, "the backend assigns the ID")
	assert.Equal(t, "iPhone 15", created.Name)

	products, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, *created, products[0])
}

func TestCreate_InvalidProductFailsWith400(t *testing.T) {
	c := startBackend(t)

	_, err := c.Create(context.Background(), models.Product{Name: "", Price: 0, Stock: -1})

	var httpErr *client.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestGetOne_MissingProductFailsWith404(t *testing.T) {
	c := startBackend(t)

	_, err := c.GetOne(context.Background(), 9999)

	var httpErr *client.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestUpdate_ReplacesRecord(t *testing.T) {
	c := startBackend(t)
	ctx := context.Background()

	created, err := c.Create(ctx, models.Product{Name: "iPad Air", Price: 649990, Stock: 15})
	require.NoError(t, err)

	updated, err := c.Update(ctx, created.ID, models.Product{Name: "iPad Air M2", Price: 699990, Stock: 12})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "iPad Air M2", updated.Name)

	fetched, err := c.GetOne(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, fetched)
}

func TestUpdate_MissingProductFailsWith404(t *testing.T) {
	c := startBackend(t)

	_, err := c.Update(context.Background(), 9999, models.Product{Name: "Nada", Price: 100, Stock: 1})

	var httpErr *client.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestDelete_ThenGetOneFailsWith404(t *testing.T) {
	c := startBackend(t)
	ctx := context.Background()

	created, err := c.Create(ctx, models.Product{Name: "AirPods Pro", Price: 249990, Stock: 25})
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, created.ID))

	_, err = c.GetOne(ctx, created.ID)
	var httpErr *client.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestDelete_MissingProductFailsWith404(t *testing.T) {
	c := startBackend(t)

	err := c.Delete(context.Background(), 9999)

	var httpErr *client.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestReset_FromExistingProductsLeavesExactlyTheSeedCatalog(t *testing.T) {
	c := startBackend(t)
	ctx := context.Background()

	// Arbitrary pre-existing state the reset must wipe.
	for _, p := range []models.Product{
		{Name: "Viejo 1", Price: 1000, Stock: 1},
		{Name: "Viejo 2", Price: 2000, Stock: 2},
		{Name: "Viejo 3", Price: 3000, Stock: 3},
	} {
		_, err := c.Create(ctx, p)
		require.NoError(t, err)
	}

	created, err := c.Reset(ctx)
	require.NoError(t, err)

	// The returned sequence follows seed order with fresh IDs.
	require.Len(t, created, len(client.SeedProducts))
	for i, seed := range client.SeedProducts {
		assert.Equal(t, seed.Name, created[i].Name)
		assert.Equal(t, seed.Price, created[i].Price)
		assert.Equal(t, seed.Stock, created[i].Stock)
		assert.NotZero(t, created[i].ID)
	}

	// The backend holds exactly the six seed products, nothing else.
	listed, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, len(client.SeedProducts))
	byName := make(map[string]models.Product, len(listed))
	for _, p := range listed {
		byName[p.Name] = p
	}
	for _, seed := range client.SeedProducts {
		got, ok := byName[seed.Name]
		require.True(t, ok, "seed product %q missing after reset", seed.Name)
		assert.Equal(t, seed.Price, got.Price)
		assert.Equal(t, seed.Stock, got.Stock)
	}
}

func TestReset_OnEmptyBackendStillSeeds(t *testing.T) {
	c := startBackend(t)
	ctx := context.Background()

	created, err := c.Reset(ctx)
	require.NoError(t, err)
	assert.Len(t, created, len(client.SeedProducts))

	listed, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, len(client.SeedProducts))
}

func TestReset_FailurePropagatesFirstError(t *testing.T) {
	// A backend that is stopped mid-flight makes every call fail; Reset
	// must surface the error rather than return partial results.
	app, err := server.New(server.Options{})
	require.NoError(t, err)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	c := client.NewProductClient("http://"+ln.Addr().String(), &http.Client{Timeout: 2 * time.Second})

	require.NoError(t, app.Shutdown())

	_, err = c.Reset(context.Background())
	assert.Error(t, err)
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		t.Logf("reset failed with status %d", httpErr.Status)
	}
}
