package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/streadway/amqp"

	"vitrina/internal/client"
	"vitrina/internal/config"
	"vitrina/internal/dashboard"
	"vitrina/internal/server"
	"vitrina/pkg/currency"
	"vitrina/pkg/events"
)

func main() {
	cfg := config.Load()

	// --- Optional event publishing ---
	// Only wired into the backend when a broker URL is configured; the
	// console runs fine without RabbitMQ.
	serverOpts := server.Options{DatabaseDSN: cfg.DatabaseDSN}
	var mqClient *events.Client
	if cfg.RabbitMQURL != "" {
		var err error
		mqClient, err = events.NewClient(events.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		serverOpts.Publisher = mqClient

		// Log the mutation events the backend publishes, mostly so a
		// local broker setup can be verified end to end.
		go func() {
			if consumeErr := mqClient.ConsumeProductEvents(func(msg amqp.Delivery) error {
				log.Printf("Product event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}); consumeErr != nil {
				log.Printf("Failed to start product event consumer: %v", consumeErr)
			}
		}()
	}

	// --- Backend selection ---
	// With API_BASE_URL set the console talks to that external product
	// API; otherwise it starts the embedded backend and talks to itself.
	baseURL := cfg.APIBaseURL
	var app *fiber.App
	if baseURL == "" {
		var err error
		app, err = server.New(serverOpts)
		if err != nil {
			log.Fatalf("Failed to build embedded backend: %v", err)
		}

		addr := cfg.AppPort
		if strings.HasPrefix(addr, ":") {
			addr = "127.0.0.1" + addr
		}
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			log.Fatalf("Failed to listen on %s: %v", addr, err)
		}
		go func() {
			if err := app.Listener(ln); err != nil {
				log.Fatalf("Embedded backend failed: %v", err)
			}
		}()
		baseURL = "http://" + ln.Addr().String()
		log.Printf("Embedded backend listening on %s", baseURL)
	}

	// --- Console wiring ---
	api := client.NewProductClient(baseURL, &http.Client{Timeout: cfg.HTTPTimeout})
	scanner := bufio.NewScanner(os.Stdin)
	ui := &consoleUI{scanner: scanner}
	ctrl := dashboard.NewController(api, ui)
	ctx := context.Background()

	// Shut down cleanly on Ctrl-C, same as on "quit".
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		fmt.Println()
		shutdown(app, mqClient)
		os.Exit(0)
	}()

	ctrl.Initialize(ctx)
	renderProducts(ctrl)

	runConsole(ctx, ctrl, scanner)
	shutdown(app, mqClient)
}

func shutdown(app *fiber.App, mqClient *events.Client) {
	if app != nil {
		if err := app.Shutdown(); err != nil {
			log.Printf("Error during backend shutdown: %v", err)
		}
	}
	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			log.Printf("Error closing RabbitMQ client: %v", err)
		}
	}
}

// runConsole reads commands until EOF or "quit".
func runConsole(ctx context.Context, ctrl *dashboard.Controller, scanner *bufio.Scanner) {
	printHelp()
	for {
		fmt.Print("vitrina> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "list", "ls":
			ctrl.LoadProducts(ctx)
			renderProducts(ctrl)
		case "add":
			handleAdd(ctx, ctrl, scanner)
		case "del", "rm":
			handleDelete(ctx, ctrl, scanner, fields)
		case "reset":
			ctrl.ResetDatabase(ctx)
			renderProducts(ctrl)
		case "help":
			printHelp()
		case "quit", "exit", "q":
			return
		default:
			fmt.Printf("Comando desconocido: %s (pruebe \"help\")\n", fields[0])
		}
	}
}

func printHelp() {
	fmt.Println("Comandos: list | add | del <id> | reset | help | quit")
}

// handleAdd walks the create-form workflow: open the dialog, prompt for the
// three fields, surface field errors, submit.
func handleAdd(ctx context.Context, ctrl *dashboard.Controller, scanner *bufio.Scanner) {
	ctrl.OpenCreateForm()

	form, ok := promptForm(scanner)
	if !ok {
		ctrl.CloseCreateForm()
		return
	}
	ctrl.SetForm(form)

	if err := ctrl.ValidateForm(); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			for _, fe := range fieldErrors {
				fmt.Printf("Campo %s no válido (regla %s)\n", fe.Field(), fe.Tag())
			}
		}
		ctrl.CloseCreateForm()
		return
	}

	ctrl.SubmitCreate(ctx)
	if msg := ctrl.ErrorMessage(); msg != "" {
		fmt.Println(msg)
		ctrl.CloseCreateForm()
		return
	}
	products := ctrl.Products()
	created := products[len(products)-1]
	fmt.Printf("Creado #%d %s — %s\n", created.ID, created.Name, currency.Format(created.Price, true))
}

func promptForm(scanner *bufio.Scanner) (dashboard.CreateForm, bool) {
	var form dashboard.CreateForm

	fmt.Print("Nombre: ")
	if !scanner.Scan() {
		return form, false
	}
	form.Name = strings.TrimSpace(scanner.Text())

	fmt.Print("Precio (CLP): ")
	if !scanner.Scan() {
		return form, false
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
	if err != nil {
		fmt.Println("Precio no válido.")
		return form, false
	}
	form.Price = price

	fmt.Print("Stock: ")
	if !scanner.Scan() {
		return form, false
	}
	stock, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		fmt.Println("Stock no válido.")
		return form, false
	}
	form.Stock = stock

	return form, true
}

// handleDelete walks the delete workflow: record the target, confirm, delete.
func handleDelete(ctx context.Context, ctrl *dashboard.Controller, scanner *bufio.Scanner, fields []string) {
	if len(fields) < 2 {
		fmt.Println("Uso: del <id>")
		return
	}

	var id uint
	if parsed, err := strconv.ParseUint(fields[1], 10, 32); err == nil {
		id = uint(parsed)
	}
	ctrl.RequestDelete(id)
	if ctrl.PendingDeleteID() == 0 {
		fmt.Println(dashboard.MsgInvalidDelete)
		return
	}

	// RequestDelete already presented the confirmation prompt.
	if !scanner.Scan() {
		ctrl.CancelDelete()
		return
	}
	if !isYes(scanner.Text()) {
		ctrl.CancelDelete()
		fmt.Println("Eliminación cancelada.")
		return
	}

	ctrl.ConfirmDelete(ctx)
	if msg := ctrl.ErrorMessage(); msg != "" {
		fmt.Println(msg)
		return
	}
	fmt.Println("Producto eliminado.")
}

func renderProducts(ctrl *dashboard.Controller) {
	if msg := ctrl.ErrorMessage(); msg != "" {
		fmt.Println(msg)
		return
	}
	products := ctrl.Products()
	if len(products) == 0 {
		fmt.Println("No hay productos.")
		return
	}
	fmt.Printf("%-5s %-25s %14s %7s\n", "ID", "NOMBRE", "PRECIO", "STOCK")
	for i, p := range products {
		fmt.Printf("%-5d %-25s %14s %7d\n",
			ctrl.IdentityKey(i, p), p.Name, currency.Format(p.Price, true), p.Stock)
	}
}

// consoleUI implements dashboard.UI on the terminal. Dialogs collapse to
// printed prompts; the command handlers read the answers.
type consoleUI struct {
	scanner *bufio.Scanner
}

func (u *consoleUI) PresentCreateDialog() {
	fmt.Println("— Nuevo producto —")
}

func (u *consoleUI) DismissCreateDialog() {}

func (u *consoleUI) PresentDeleteConfirm(id uint) {
	fmt.Printf("¿Eliminar el producto %d? (s/n): ", id)
}

func (u *consoleUI) DismissDeleteConfirm() {}

func (u *consoleUI) ConfirmReset(warning string) bool {
	fmt.Printf("%s (s/n): ", warning)
	if !u.scanner.Scan() {
		return false
	}
	return isYes(u.scanner.Text())
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "si", "sí", "y", "yes":
		return true
	}
	return false
}
