package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/andreasstove999/storefront-client-go/internal/admin"
	"github.com/andreasstove999/storefront-client-go/internal/api"
	"github.com/andreasstove999/storefront-client-go/internal/app"
	"github.com/andreasstove999/storefront-client-go/internal/catalog"
	"github.com/andreasstove999/storefront-client-go/internal/checkout"
	"github.com/andreasstove999/storefront-client-go/internal/config"
	"github.com/andreasstove999/storefront-client-go/internal/session"
)

const usage = `usage: storefront [flags] <command> [args]

commands:
  login <email> <password>      sign in and persist the session
  register <email> <password>   create an account
  logout                        drop the persisted session
  whoami                        show the current session
  products                      list products (see filter flags)
  cart                          show the cart
  cart add <productId> [qty]    add a product
  cart update <itemId> <qty>    change an item quantity
  cart remove <itemId>          remove an item
  cart clear                    empty the cart
  checkout <name> <phone> <addr>  submit the order
  orders                        show order history
  admin products list
  admin products add <name> <price> <category>
  admin products delete <id>
  admin users list
  admin users delete <id>
  admin users promote <id>
  admin orders list
  admin orders status <id> <status>
`

func main() {
	flags := pflag.NewFlagSet("storefront", pflag.ExitOnError)
	apiURL := flags.String("api-url", "", "shop API base URL (overrides env/config)")
	search := flags.String("search", "", "filter products by name substring")
	category := flags.String("category", "", "filter products by category")
	minPrice := flags.Float64("min-price", -1, "filter products by minimum price")
	maxPrice := flags.Float64("max-price", -1, "filter products by maximum price")
	yes := flags.BoolP("yes", "y", false, "skip confirmation prompts")
	verbose := flags.BoolP("verbose", "v", false, "log internal activity to stderr")
	flags.Usage = func() { fmt.Fprint(os.Stderr, usage); flags.PrintDefaults() }

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	args := flags.Args()
	if len(args) == 0 {
		flags.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}

	var logOut io.Writer = io.Discard
	if *verbose {
		logOut = os.Stderr
	}
	logger := log.New(logOut, "[storefront] ", log.LstdFlags|log.Lmicroseconds)

	var confirm admin.Confirmer = promptConfirmer{}
	if *yes {
		confirm = admin.AutoConfirm
	}

	a, err := app.New(cfg, app.Options{Logger: logger, Confirm: confirm})
	if err != nil {
		fatal(err)
	}
	defer a.Close()

	if err := a.Start(); err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Catalog.SetFilter(catalogFilter(*search, *category, *minPrice, *maxPrice))

	if err := run(ctx, a, args); err != nil {
		switch {
		case errors.Is(err, app.ErrLoginRequired):
			fmt.Fprintln(os.Stderr, "please sign in first: storefront login <email> <password>")
		case errors.Is(err, app.ErrAccessDenied):
			fmt.Fprintln(os.Stderr, "access denied: this command needs an admin account")
		case errors.Is(err, admin.ErrDeclined):
			fmt.Fprintln(os.Stderr, "cancelled")
		case api.IsKind(err, api.KindUnauthenticated):
			fmt.Fprintf(os.Stderr, "%v\nplease sign in first: storefront login <email> <password>\n", err)
		default:
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		if len(rest) != 2 {
			return errors.New("login needs <email> <password>")
		}
		role, err := a.Login(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		fmt.Printf("signed in as %s (%s)\n", rest[0], role)
		return nil

	case "register":
		if len(rest) != 2 {
			return errors.New("register needs <email> <password>")
		}
		if err := a.Register(ctx, rest[0], rest[1]); err != nil {
			return err
		}
		fmt.Println("account created, you can sign in now")
		return nil

	case "logout":
		a.Logout()
		fmt.Println("signed out")
		return nil

	case "whoami":
		if !a.Session.IsAuthenticated() {
			fmt.Println("not signed in")
			return nil
		}
		fmt.Printf("user %s, role %s\n", a.Session.UserID(), a.Session.Role())
		return nil

	case "products":
		products, err := a.Catalog.Products(ctx)
		if err != nil {
			return err
		}
		for _, p := range products {
			fmt.Printf("%6d  %-30s  %8.2f  %s\n", p.ID, p.Name, p.Price, p.Category)
		}
		return nil

	case "cart":
		return runCart(ctx, a, rest)

	case "checkout":
		if len(rest) < 3 {
			return errors.New("checkout needs <name> <phone> <address>")
		}
		if err := a.Cart.Refresh(ctx); err != nil {
			return err
		}
		form := checkout.Form{
			CustomerName: rest[0],
			Phone:        rest[1],
			Address:      strings.Join(rest[2:], " "),
		}
		order, err := a.Checkout.Submit(ctx, form, a.Cart.Snapshot().Items)
		if err != nil {
			return err
		}
		fmt.Printf("order %d placed; run `storefront orders` for your history\n", order.ID)
		return nil

	case "orders":
		if !a.Session.IsAuthenticated() {
			return app.ErrLoginRequired
		}
		orders, err := a.Checkout.History(ctx)
		if err != nil {
			return err
		}
		for _, o := range orders {
			fmt.Printf("%6d  %s  %d item(s)\n", o.ID, o.CreatedAt.Format("2006-01-02 15:04"), len(o.Items))
		}
		return nil

	case "admin":
		if err := a.RequireRole(session.RoleAdmin); err != nil {
			return err
		}
		return runAdmin(ctx, a, rest)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runCart(ctx context.Context, a *app.App, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}
	switch args[0] {
	case "show":
		if err := a.Cart.Refresh(ctx); err != nil {
			return err
		}
		st := a.Cart.Snapshot()
		if len(st.Items) == 0 {
			fmt.Println("your cart is empty")
			return nil
		}
		for _, it := range st.Items {
			fmt.Printf("%6d  %-30s  x%d\n", it.ID, it.Product.Name, it.Quantity)
		}
		return nil

	case "add":
		if len(args) < 2 {
			return errors.New("cart add needs <productId> [quantity]")
		}
		productID, err := parseID(args[1])
		if err != nil {
			return err
		}
		qty := 1
		if len(args) > 2 {
			if qty, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("bad quantity %q", args[2])
			}
		}
		return a.Cart.AddItem(ctx, productID, qty)

	case "update":
		if len(args) != 3 {
			return errors.New("cart update needs <itemId> <quantity>")
		}
		itemID, err := parseID(args[1])
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("bad quantity %q", args[2])
		}
		return a.Cart.UpdateQuantity(ctx, itemID, qty)

	case "remove":
		if len(args) != 2 {
			return errors.New("cart remove needs <itemId>")
		}
		itemID, err := parseID(args[1])
		if err != nil {
			return err
		}
		return a.Cart.RemoveItem(ctx, itemID)

	case "clear":
		return a.Cart.Clear(ctx)

	default:
		return fmt.Errorf("unknown cart subcommand %q", args[0])
	}
}

func runAdmin(ctx context.Context, a *app.App, args []string) error {
	if len(args) < 2 {
		return errors.New("admin needs <products|users|orders> <subcommand>")
	}
	resource, rest := args[0], args[1:]
	switch resource {
	case "products":
		switch rest[0] {
		case "list":
			products, err := a.AdminProducts.List(ctx)
			if err != nil {
				return err
			}
			for _, p := range products {
				fmt.Printf("%6d  %-30s  %8.2f  %s\n", p.ID, p.Name, p.Price, p.Category)
			}
			return nil
		case "add":
			if len(rest) != 4 {
				return errors.New("admin products add needs <name> <price> <category>")
			}
			price, err := strconv.ParseFloat(rest[2], 64)
			if err != nil {
				return fmt.Errorf("bad price %q", rest[2])
			}
			p, err := a.AdminProducts.Create(ctx, api.ProductFields{Name: rest[1], Price: price, Category: rest[3]})
			if err != nil {
				return err
			}
			fmt.Printf("created product %d\n", p.ID)
			return nil
		case "delete":
			if len(rest) != 2 {
				return errors.New("admin products delete needs <id>")
			}
			id, err := parseID(rest[1])
			if err != nil {
				return err
			}
			return a.AdminProducts.Delete(ctx, id)
		}

	case "users":
		switch rest[0] {
		case "list":
			users, err := a.AdminUsers.List(ctx)
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Printf("%6d  %-30s  %s\n", u.ID, u.Email, u.Role)
			}
			return nil
		case "delete":
			if len(rest) != 2 {
				return errors.New("admin users delete needs <id>")
			}
			id, err := parseID(rest[1])
			if err != nil {
				return err
			}
			return a.AdminUsers.Delete(ctx, id)
		case "promote":
			if len(rest) != 2 {
				return errors.New("admin users promote needs <id>")
			}
			id, err := parseID(rest[1])
			if err != nil {
				return err
			}
			return a.AdminUsers.Promote(ctx, id)
		}

	case "orders":
		switch rest[0] {
		case "list":
			orders, err := a.AdminOrders.List(ctx)
			if err != nil {
				return err
			}
			for _, o := range orders {
				fmt.Printf("%6d  user %d  %s  %d item(s)\n", o.ID, o.UserID, o.Status, len(o.Items))
			}
			return nil
		case "status":
			if len(rest) != 3 {
				return errors.New("admin orders status needs <id> <status>")
			}
			id, err := parseID(rest[1])
			if err != nil {
				return err
			}
			if _, err := a.AdminOrders.SetStatus(ctx, id, rest[2]); err != nil {
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("unknown admin command %q", strings.Join(args, " "))
}

// promptConfirmer asks on the terminal before destructive admin actions.
type promptConfirmer struct{}

func (promptConfirmer) Confirm(action string) bool {
	fmt.Printf("%s? [y/N] ", action)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func catalogFilter(name, category string, minPrice, maxPrice float64) catalog.Filter {
	f := catalog.Filter{Name: name, Category: category}
	if minPrice >= 0 {
		f.MinPrice = &minPrice
	}
	if maxPrice >= 0 {
		f.MaxPrice = &maxPrice
	}
	return f
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad id %q", s)
	}
	return id, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
