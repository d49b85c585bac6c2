package cardvault

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/fx"
)

// Card is the display-safe projection of a vaulted card. Raw PAN data
// never enters this service; only the vault sees it.
type Card struct {
	Last4       string `json:"last4"`
	Brand       string `json:"brand"`
	ExpiryMonth int    `json:"expiryMonth"`
	ExpiryYear  int    `json:"expiryYear"`
	Country     string `json:"country"`
}

var (
	ErrUnknownCard = errors.New("unknown card token")
	ErrUnavailable = errors.New("card vault unavailable")
)

// Vault resolves opaque card tokens and authorizes charges. Production
// deployments swap in a real tokenization provider; the static vault
// below serves development and tests.
type Vault interface {
	Resolve(ctx context.Context, cardID string) (Card, error)
	Authorize(ctx context.Context, cardID string, amount int64, currency string) (bool, error)
}

type staticVault struct{}

func NewStatic() Vault {
	return staticVault{}
}

// knownBrands is scanned in order; "mastercard" before shorter names so
// substring matches stay unambiguous.
var knownBrands = []string{"mastercard", "discover", "amex", "visa"}

func (staticVault) Resolve(ctx context.Context, cardID string) (Card, error) {
	_ = ctx
	token := strings.TrimSpace(cardID)
	if token == "" {
		return Card{}, ErrUnknownCard
	}
	card := Card{
		Last4:       "4242",
		Brand:       "visa",
		ExpiryMonth: 12,
		ExpiryYear:  2025,
		Country:     "US",
	}
	for _, brand := range knownBrands {
		if strings.Contains(token, brand) {
			card.Brand = brand
			break
		}
	}
	return card, nil
}

func (staticVault) Authorize(ctx context.Context, cardID string, amount int64, currency string) (bool, error) {
	_ = ctx
	_ = amount
	_ = currency
	if strings.TrimSpace(cardID) == "" {
		return false, ErrUnknownCard
	}
	// Tokens carrying the decline marker simulate issuer rejection.
	if strings.HasSuffix(cardID, "_declined") {
		return false, nil
	}
	return true, nil
}

var Module = fx.Module("cardvault",
	fx.Provide(NewStatic),
)
