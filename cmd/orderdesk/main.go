package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/Lixing-Zhang/order-desk/internal/client"
	"github.com/Lixing-Zhang/order-desk/internal/config"
	"github.com/Lixing-Zhang/order-desk/internal/models"
	"github.com/Lixing-Zhang/order-desk/internal/pricing"
	"github.com/Lixing-Zhang/order-desk/internal/ui"
	"github.com/Lixing-Zhang/order-desk/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Order Desk\n\n")
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  orderdesk [--backend <url>] customers\n")
	fmt.Fprintf(w, "  orderdesk [--backend <url>] add-customer --name <name> --email <email> [--phone <p>] [--address <a>]\n")
	fmt.Fprintf(w, "  orderdesk [--backend <url>] orders\n")
	fmt.Fprintf(w, "  orderdesk [--backend <url>] create-order --customer <id> [--status <s>] [--discount <pct>] --item name:qty:price[:discount] ...\n\n")
	fmt.Fprintf(w, "Options:\n")
	fmt.Fprintf(w, "  --backend URL  Backend base URL (default $BACKEND_URL or %s).\n", config.DefaultBackendURL)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("orderdesk", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	backend := fs.String("backend", cfg.BackendURL, "Backend base URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	log := logger.NewWithWriter(cfg.LogLevel, stderr)
	api := client.New(*backend, client.WithLogger(log))
	app := ui.NewApp(api)
	log.Debug("using backend", "url", api.BaseURL())

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "customers":
		if err := app.Directory.Load(ctx); err != nil {
			return err
		}
		return app.Directory.Render(stdout)
	case "add-customer":
		return addCustomer(ctx, app, rest, stdout, stderr)
	case "orders":
		if err := app.Orders.Refresh(ctx); err != nil {
			return err
		}
		return app.Orders.Render(stdout)
	case "create-order":
		return createOrder(ctx, app, rest, stdout, stderr)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func addCustomer(ctx context.Context, app *ui.App, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("add-customer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var form ui.CustomerForm
	fs.StringVar(&form.Name, "name", "", "Customer name (required)")
	fs.StringVar(&form.Email, "email", "", "Customer email (required)")
	fs.StringVar(&form.Phone, "phone", "", "Phone number")
	fs.StringVar(&form.Address, "address", "", "Postal address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	app.Directory.SetForm(form)
	c, err := app.Directory.Create(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "Created customer %s (%s)\n", c.ID, c.Name)
	return err
}

func createOrder(ctx context.Context, app *ui.App, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("create-order", flag.ContinueOnError)
	fs.SetOutput(stderr)
	customerID := fs.String("customer", "", "Customer id (required)")
	status := fs.String("status", string(models.StatusPending), "Order status")
	discount := fs.Float64("discount", 0, "Order discount percent")
	var items itemList
	fs.Var(&items, "item", "Line item name:qty:price[:discount], repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFinite("discount", *discount); err != nil {
		return err
	}

	if *customerID != "" {
		if err := app.Directory.Load(ctx); err != nil {
			return err
		}
		c, ok := app.Directory.Lookup(*customerID)
		if !ok {
			// the backend answers for unknown ids
			c = models.Customer{ID: *customerID}
		}
		app.Draft.Select(c)
	}

	st, err := models.ParseStatus(*status)
	if err != nil {
		return err
	}
	if err := app.Draft.SetStatus(st); err != nil {
		return err
	}
	app.Draft.SetDiscount(*discount)
	for _, it := range items {
		if err := app.Draft.UpdateItem(app.Draft.AddItem(), it); err != nil {
			return err
		}
	}

	preview := app.Draft.Preview()
	fmt.Fprintf(stdout, "Preview: subtotal $%s, discounts $%s, total $%s\n",
		preview.Subtotal.StringFixed(2), preview.DiscountTotal.StringFixed(2), preview.Total.StringFixed(2))

	order, err := app.Draft.Submit(ctx)
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.NotFound() {
		return fmt.Errorf("%w (customer %q)", err, *customerID)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Created order %s: total $%s\n", order.ID, pricing.FormatMoney(order.Total))
	return app.Orders.Render(stdout)
}

// itemList collects repeated -item flags
type itemList []models.OrderItem

func (l *itemList) String() string {
	parts := make([]string, 0, len(*l))
	for _, it := range *l {
		parts = append(parts, fmt.Sprintf("%s:%d:%g:%g", it.Name, it.Quantity, it.UnitPrice, it.DiscountPercent))
	}
	return strings.Join(parts, ",")
}

func (l *itemList) Set(value string) error {
	item, err := parseItem(value)
	if err != nil {
		return err
	}
	*l = append(*l, item)
	return nil
}

func parseItem(value string) (models.OrderItem, error) {
	fields := strings.Split(value, ":")
	if len(fields) < 3 || len(fields) > 4 {
		return models.OrderItem{}, fmt.Errorf("item %q: want name:qty:price[:discount]", value)
	}

	qty, err := strconv.Atoi(fields[1])
	if err != nil {
		return models.OrderItem{}, fmt.Errorf("item %q: invalid quantity: %w", value, err)
	}
	price, err := strconv.ParseFloat(fields[2], 64)
	if err == nil {
		err = requireFinite("price", price)
	}
	if err != nil {
		return models.OrderItem{}, fmt.Errorf("item %q: invalid price: %w", value, err)
	}
	var disc float64
	if len(fields) == 4 {
		disc, err = strconv.ParseFloat(fields[3], 64)
		if err == nil {
			err = requireFinite("discount", disc)
		}
		if err != nil {
			return models.OrderItem{}, fmt.Errorf("item %q: invalid discount: %w", value, err)
		}
	}

	return models.OrderItem{Name: fields[0], Quantity: qty, UnitPrice: price, DiscountPercent: disc}, nil
}

func requireFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a finite number, got %v", name, v)
	}
	return nil
}
