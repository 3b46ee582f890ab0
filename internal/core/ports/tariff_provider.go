package ports

import (
	"context"

	"ostrov/internal/core/domain/model/kernel"
)

// TariffQuote is one delivery quote from the tariff provider. Money is in
// kopecks; delivery time is a day range.
type TariffQuote struct {
	CostKopecks  int64
	VatKopecks   int64
	TotalKopecks int64
	MinDays      int
	MaxDays      int
}

// TariffProvider defines the contract of the external tariff service. Calls
// are idempotent and side-effect-free; the provider may be slow or down, so
// every call takes a context with a deadline.
type TariffProvider interface {
	// GetPublicQuote returns the retail tariff for a single parcel.
	GetPublicQuote(ctx context.Context, from, to kernel.PostalCode, weightGrams int) (TariffQuote, error)

	// GetContractQuote returns the negotiated tariff for a consolidated
	// shipment of the given total weight.
	GetContractQuote(ctx context.Context, from, to kernel.PostalCode, weightGrams int) (TariffQuote, error)

	// GetBalance returns the contract account balance in kopecks.
	GetBalance(ctx context.Context) (int64, error)
}
