// loadgen races many single-unit checkouts against one SKU and checks
// that the ledger never oversells: with N units of stock and M > N
// buyers, exactly N orders may complete.
package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/psolovev/storefront/internal/adapter/payment"
	"github.com/psolovev/storefront/internal/adapter/storage"
	"github.com/psolovev/storefront/internal/core/domain"
	"github.com/psolovev/storefront/internal/core/service"
	"github.com/psolovev/storefront/internal/port"
)

const (
	redisAddr      = "localhost:6379"
	sku            = "LOADGEN-1"
	initialStock   = 20
	totalCheckouts = 50
)

func main() {
	ctx := context.Background()

	// Prefer the redis ledger when a local Redis answers; otherwise
	// run the same scenario against the in-memory ledger.
	var ledger port.InventoryLedger
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(ctx).Err(); err == nil {
		defer rdb.Close()
		rdb.Del(ctx, "stock:"+sku)
		ledger = storage.NewRedisLedger(rdb)
		log.Printf("using redis ledger at %s", redisAddr)
	} else {
		ledger = storage.NewMemoryLedger()
		log.Println("redis unavailable, using in-memory ledger")
	}

	if err := ledger.AddStock(ctx, sku, initialStock); err != nil {
		log.Fatalf("failed to seed stock: %v", err)
	}

	catalog := storage.NewMemoryCatalog()
	product, err := domain.NewProduct(sku, "Load Test Item", 100.0)
	if err != nil {
		log.Fatalf("invalid product: %v", err)
	}
	catalog.AddProduct(product)

	orders := storage.NewMemoryOrderRepository()
	checkoutService := service.NewCheckoutService(ledger, payment.NewTokenGateway(), orders)

	var successCount atomic.Int32
	var failCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalCheckouts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			cart := service.NewCart(catalog, ledger)
			if err := cart.AddItem(ctx, sku, 1); err != nil {
				failCount.Add(1)
				return
			}
			result := checkoutService.Checkout(ctx, cart, "tok-loadgen")
			if result.Success {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	success := successCount.Load()
	fail := failCount.Load()

	fmt.Println("========== LOADGEN RESULTS ==========")
	fmt.Printf("Initial Stock:    %d\n", initialStock)
	fmt.Printf("Total Checkouts:  %d\n", totalCheckouts)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Orders Persisted: %d\n", orders.Len())
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("=====================================")

	if success == int32(initialStock) && fail == int32(totalCheckouts-initialStock) {
		fmt.Printf("PASS: exactly %d orders succeeded, %d failed\n", initialStock, totalCheckouts-initialStock)
	} else {
		fmt.Printf("FAIL: expected %d success/%d fail, got %d/%d\n",
			initialStock, totalCheckouts-initialStock, success, fail)
	}

	finalStock, err := ledger.AvailableQuantity(ctx, sku)
	if err != nil {
		log.Fatalf("failed to read final stock: %v", err)
	}
	fmt.Printf("Final Stock: %d\n", finalStock)
	if finalStock == 0 {
		fmt.Println("PASS: stock depleted to 0")
	} else {
		fmt.Printf("FAIL: expected stock 0, got %d\n", finalStock)
	}
}
