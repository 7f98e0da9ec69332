package core

import (
	"fmt"

	"github.com/alemiherbert/pesa-pay/internal/model"
	"github.com/alemiherbert/pesa-pay/internal/ports"
)

type AuthorizerRegistry struct {
	authorizers map[model.PaymentProvider]ports.IAuthorizer
}

func NewAuthorizerRegistry() *AuthorizerRegistry {
	return &AuthorizerRegistry{
		authorizers: make(map[model.PaymentProvider]ports.IAuthorizer),
	}
}

func (r *AuthorizerRegistry) Register(provider model.PaymentProvider, authorizer ports.IAuthorizer) {
	r.authorizers[provider] = authorizer
}

func (r *AuthorizerRegistry) Get(provider model.PaymentProvider) (ports.IAuthorizer, error) {
	if a, exists := r.authorizers[provider]; exists {
		return a, nil
	}
	return nil, fmt.Errorf("provider %s not configured", provider)
}
