// Package payment provides the token gateway used when no external
// payment provider is wired in.
package payment

import (
	"context"
	"fmt"
)

// DeclineToken makes the gateway report a declined charge, so decline
// paths can be exercised end to end.
const DeclineToken = "declined"

// TokenGateway captures any charge presented with a non-empty token
// other than DeclineToken.
type TokenGateway struct{}

func NewTokenGateway() *TokenGateway {
	return &TokenGateway{}
}

func (g *TokenGateway) Charge(_ context.Context, amount float64, paymentToken string) (bool, error) {
	if amount < 0 {
		return false, fmt.Errorf("invalid charge amount %.2f", amount)
	}
	if paymentToken == "" || paymentToken == DeclineToken {
		return false, nil
	}
	return true, nil
}
