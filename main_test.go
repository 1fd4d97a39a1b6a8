package main

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/client"
	"vitrina/internal/dashboard"
	"vitrina/internal/server"
)

func TestIsYes(t *testing.T) {
	for _, answer := range []string{"s", "S", "si", "sí", "y", "yes", " s "} {
		assert.True(t, isYes(answer), "%q should confirm", answer)
	}
	for _, answer := range []string{"", "n", "no", "nope", "q"} {
		assert.False(t, isYes(answer), "%q should not confirm", answer)
	}
}

func TestPromptForm_ReadsThreeFields(t *testing.T) {
	scanner := bufio.NewScanner(strings.NewReader("Teclado Mecánico\n59990\n4\n"))

	form, ok := promptForm(scanner)

	require.True(t, ok)
	assert.Equal(t, dashboard.CreateForm{Name: "Teclado Mecánico", Price: 59990, Stock: 4}, form)
}

func TestPromptForm_RejectsNonNumericPrice(t *testing.T) {
	scanner := bufio.NewScanner(strings.NewReader("Teclado\ncaro\n"))

	_, ok := promptForm(scanner)

	assert.False(t, ok)
}

func TestConsoleUI_ConfirmReset(t *testing.T) {
	ui := &consoleUI{scanner: bufio.NewScanner(strings.NewReader("s\nn\n"))}

	assert.True(t, ui.ConfirmReset(dashboard.ResetWarning))
	assert.False(t, ui.ConfirmReset(dashboard.ResetWarning))
}

// TestConsoleSession drives a whole scripted session against the embedded
// backend: create a product, delete it, reset to the seed catalog, quit.
func TestConsoleSession(t *testing.T) {
	app, err := server.New(server.Options{})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	defer func() {
		if err := app.Shutdown(); err != nil {
			t.Logf("backend shutdown: %v", err)
		}
	}()

	api := client.NewProductClient("http://"+ln.Addr().String(), &http.Client{Timeout: 5 * time.Second})

	script := strings.Join([]string{
		"add",
		"Teclado Mecánico", // name
		"59990",            // price
		"4",                // stock
		"del 1",
		"s", // confirm delete
		"reset",
		"s", // confirm reset
		"quit",
	}, "\n") + "\n"

	scanner := bufio.NewScanner(strings.NewReader(script))
	ctrl := dashboard.NewController(api, &consoleUI{scanner: scanner})
	ctx := context.Background()

	ctrl.Initialize(ctx)
	require.Empty(t, ctrl.ErrorMessage())
	require.Empty(t, ctrl.Products())

	runConsole(ctx, ctrl, scanner)

	products := ctrl.Products()
	require.Len(t, products, len(client.SeedProducts))
	for i, seed := range client.SeedProducts {
		assert.Equal(t, seed.Name, products[i].Name)
		assert.Equal(t, seed.Price, products[i].Price)
		assert.Equal(t, seed.Stock, products[i].Stock)
		assert.NotZero(t, products[i].ID)
	}
	assert.Empty(t, ctrl.ErrorMessage())
}
