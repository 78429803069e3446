package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/psolovev/storefront/internal/core/discount"
	"github.com/psolovev/storefront/internal/core/domain"
	"github.com/psolovev/storefront/internal/port"
)

// CheckoutService drives the checkout pipeline: validate and reserve
// stock, price the cart, charge the gateway, persist the order. Every
// failing stage releases whatever stock the attempt reserved, so a
// failed checkout leaves no side effects behind.
type CheckoutService struct {
	ledger  port.InventoryLedger
	gateway port.PaymentGateway
	orders  port.OrderRepository
}

func NewCheckoutService(ledger port.InventoryLedger, gateway port.PaymentGateway, orders port.OrderRepository) *CheckoutService {
	return &CheckoutService{
		ledger:  ledger,
		gateway: gateway,
		orders:  orders,
	}
}

// Checkout runs the pipeline to completion. Failures are never
// returned as errors; they come back as a result with Success false
// and a stage-specific message, with no order attached. Stock is
// reserved up front rather than merely re-checked, so a payment
// decline or persistence failure rolls the ledger back to exactly
// where it was.
func (s *CheckoutService) Checkout(ctx context.Context, cart *Cart, paymentToken string) domain.CheckoutResult {
	items := cart.Items()
	if len(items) == 0 {
		return failed(ErrEmptyCart.Error())
	}

	status := domain.CheckoutStatusValidating

	reserved := make([]domain.LineItem, 0, len(items))
	for sku, item := range items {
		ok, err := s.ledger.Reserve(ctx, sku, item.Quantity)
		if err != nil {
			s.releaseAll(ctx, reserved)
			log.Printf("checkout: reserve %s x%d: %v", sku, item.Quantity, err)
			return failed(fmt.Sprintf("inventory check failed for %s", sku))
		}
		if !ok {
			s.releaseAll(ctx, reserved)
			return failed(fmt.Sprintf("inventory no longer available for %s", sku))
		}
		reserved = append(reserved, item)
	}

	status, err := advance(status, domain.CheckoutStatusPricing)
	if err != nil {
		s.releaseAll(ctx, reserved)
		return failed(err.Error())
	}

	subtotal := cart.Total()
	lineItems := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, item)
	}
	totalDiscount := discount.TotalDiscount(lineItems)
	finalAmount := subtotal - totalDiscount

	status, err = advance(status, domain.CheckoutStatusCharging)
	if err != nil {
		s.releaseAll(ctx, reserved)
		return failed(err.Error())
	}

	captured, err := s.gateway.Charge(ctx, finalAmount, paymentToken)
	if err != nil {
		s.releaseAll(ctx, reserved)
		log.Printf("checkout: charge of %.2f: %v", finalAmount, err)
		return failed("payment declined")
	}
	if !captured {
		s.releaseAll(ctx, reserved)
		return failed("payment declined")
	}

	status, err = advance(status, domain.CheckoutStatusPersisting)
	if err != nil {
		s.releaseAll(ctx, reserved)
		return failed(err.Error())
	}

	order := domain.Order{
		ID:            uuid.New().String(),
		Items:         lineItems,
		Subtotal:      subtotal,
		TotalDiscount: totalDiscount,
		FinalAmount:   finalAmount,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.orders.Save(ctx, order); err != nil {
		s.releaseAll(ctx, reserved)
		log.Printf("checkout: save order %s: %v", order.ID, err)
		return failed("order could not be persisted")
	}

	if _, err := advance(status, domain.CheckoutStatusCompleted); err != nil {
		// The order is saved and the charge captured; report success.
		log.Printf("checkout: order %s: %v", order.ID, err)
	}

	return domain.CheckoutResult{
		Success: true,
		Message: "order processed successfully",
		Order:   &order,
	}
}

// releaseAll rolls back the reservations taken so far.
func (s *CheckoutService) releaseAll(ctx context.Context, items []domain.LineItem) {
	for _, item := range items {
		if err := s.ledger.Release(ctx, item.Product.SKU, item.Quantity); err != nil {
			log.Printf("checkout: CRITICAL release %s x%d failed: %v", item.Product.SKU, item.Quantity, err)
		}
	}
}

func advance(from, to domain.CheckoutStatus) (domain.CheckoutStatus, error) {
	if !from.CanTransitionTo(to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	return to, nil
}

func failed(message string) domain.CheckoutResult {
	return domain.CheckoutResult{Success: false, Message: message}
}
