package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/psolovev/storefront/internal/core/domain"
)

// MySQLOrderRepository persists orders in MySQL across two tables:
// orders for the totals and order_items for the line snapshot. Both
// are written in one transaction.
//
// Schema:
//
//	CREATE TABLE orders (
//	    id             VARCHAR(36) PRIMARY KEY,
//	    subtotal       DOUBLE NOT NULL,
//	    total_discount DOUBLE NOT NULL,
//	    final_amount   DOUBLE NOT NULL,
//	    created_at     DATETIME(6) NOT NULL
//	);
//
//	CREATE TABLE order_items (
//	    order_id   VARCHAR(36) NOT NULL,
//	    sku        VARCHAR(64) NOT NULL,
//	    name       VARCHAR(255) NOT NULL,
//	    unit_price DOUBLE NOT NULL,
//	    quantity   INT NOT NULL,
//	    PRIMARY KEY (order_id, sku)
//	);
type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (m *MySQLOrderRepository) Save(ctx context.Context, order domain.Order) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, subtotal, total_discount, final_amount, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		order.ID, order.Subtotal, order.TotalDiscount, order.FinalAmount, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, sku, name, unit_price, quantity)
			VALUES (?, ?, ?, ?, ?)`,
			order.ID, item.Product.SKU, item.Product.Name, item.Product.Price, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order item %s: %w", item.Product.SKU, err)
		}
	}

	return tx.Commit()
}

func (m *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := m.db.QueryRowContext(ctx, `
		SELECT id, subtotal, total_discount, final_amount, created_at
		FROM orders WHERE id = ?`, id,
	).Scan(&order.ID, &order.Subtotal, &order.TotalDiscount, &order.FinalAmount, &order.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT sku, name, unit_price, quantity
		FROM order_items WHERE order_id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var product domain.Product
		var quantity int
		if err := rows.Scan(&product.SKU, &product.Name, &product.Price, &quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		item, err := domain.NewLineItem(product, quantity)
		if err != nil {
			return nil, fmt.Errorf("rebuild order item %s: %w", product.SKU, err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return &order, nil
}
