// Команда seed готовит базу магазина к работе: накатывает схему,
// заполняет справочник производителей и создаёт администратора.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tolyara/webshop/internal/domain"
	"github.com/tolyara/webshop/internal/storage/postgres"
)

const defaultTimeout = 30 * time.Second

var defaultManufacturers = []string{"X-producer", "Y-producer", "Z-producer"}

func main() {
	var (
		dsn           string
		manufacturers string
		adminLogin    string
		adminPassword string
	)

	flag.StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: WEBSHOP_POSTGRES_DSN)")
	flag.StringVar(&manufacturers, "manufacturers", "", "comma-separated manufacturer names to seed")
	flag.StringVar(&adminLogin, "admin-login", "admin", "bootstrap admin login")
	flag.StringVar(&adminPassword, "admin-password", "", "bootstrap admin password (empty=skip admin)")
	flag.Parse()

	_ = godotenv.Load()

	if strings.TrimSpace(dsn) == "" {
		dsn = strings.TrimSpace(os.Getenv("WEBSHOP_POSTGRES_DSN"))
	}
	if dsn == "" {
		fail("WEBSHOP_POSTGRES_DSN (or -dsn) is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		fail("open postgres store: %v", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		fail("ensure schema failed: %v", err)
	}
	fmt.Println("schema ok")

	names := defaultManufacturers
	if manufacturers != "" {
		names = strings.Split(manufacturers, ",")
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
	}
	if err := store.SeedManufacturers(ctx, names); err != nil {
		fail("seed manufacturers failed: %v", err)
	}
	fmt.Printf("manufacturers ok: %s\n", strings.Join(names, ", "))

	if adminPassword == "" {
		fmt.Println("admin skipped: no -admin-password")
		return
	}

	storage := postgres.NewStorage(store)
	admin := domain.Account{Login: adminLogin, Password: adminPassword, Active: true}
	switch err := storage.AddAccount(domain.RoleAdmin, admin); {
	case err == nil:
		fmt.Printf("admin ok: %s\n", adminLogin)
	case errors.Is(err, domain.ErrDuplicateKey):
		fmt.Printf("admin exists: %s\n", adminLogin)
	default:
		fail("add admin failed: %v", err)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
