package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/psolovev/storefront/internal/adapter/handler"
	"github.com/psolovev/storefront/internal/adapter/payment"
	"github.com/psolovev/storefront/internal/adapter/storage"
	"github.com/psolovev/storefront/internal/core/domain"
	"github.com/psolovev/storefront/internal/core/service"
	"github.com/psolovev/storefront/internal/port"
)

const httpPort = ":8080"

// Demo catalog seeded at startup.
var seedProducts = []struct {
	sku   string
	name  string
	price float64
	stock int
}{
	{"WIDGET-1", "Widget", 100.0, 100},
	{"GADGET-1", "Gadget", 50.0, 100},
	{"GIZMO-1", "Gizmo", 250.0, 40},
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalog := storage.NewMemoryCatalog()
	for _, p := range seedProducts {
		product, err := domain.NewProduct(p.sku, p.name, p.price)
		if err != nil {
			log.Fatalf("invalid seed product %s: %v", p.sku, err)
		}
		catalog.AddProduct(product)
	}

	// REDIS_ADDR switches the ledger to Redis so several processes can
	// share one set of stock counters; default is in-memory.
	var ledger port.InventoryLedger
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		defer rdb.Close()
		ledger = storage.NewRedisLedger(rdb)
		log.Printf("using redis ledger at %s", addr)
	} else {
		ledger = storage.NewMemoryLedger()
		log.Println("using in-memory ledger")
	}

	// MYSQL_DSN switches order persistence to MySQL; default is in-memory.
	var orders port.OrderRepository
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			log.Fatalf("failed to connect mysql: %v", err)
		}
		db.SetMaxOpenConns(50)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("failed to ping mysql: %v", err)
		}
		defer db.Close()
		orders = storage.NewMySQLOrderRepository(db)
		log.Println("using mysql order repository")
	} else {
		orders = storage.NewMemoryOrderRepository()
		log.Println("using in-memory order repository")
	}

	for _, p := range seedProducts {
		if err := ledger.AddStock(ctx, p.sku, p.stock); err != nil {
			log.Fatalf("failed to seed stock for %s: %v", p.sku, err)
		}
	}
	log.Printf("seeded %d products", len(seedProducts))

	checkoutService := service.NewCheckoutService(ledger, payment.NewTokenGateway(), orders)
	httpHandler := handler.NewHTTPHandler(catalog, ledger, checkoutService, orders)

	httpServer := &http.Server{
		Addr:    httpPort,
		Handler: httpHandler.Routes(),
	}

	go func() {
		log.Printf("HTTP server listening on %s", httpPort)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")
}
