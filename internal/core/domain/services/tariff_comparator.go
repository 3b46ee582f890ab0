package services

import (
	"context"
	"errors"
	"fmt"

	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/core/domain/model/order"
	"ostrov/internal/core/ports"
	"ostrov/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrTariffUnavailable is returned when a public or contract quote
	// cannot be obtained. The scheduler defers to the next cadence tick;
	// only a deadline or a forced dispatch ships without a quote.
	ErrTariffUnavailable = errors.New("tariff quote unavailable")

	// ErrInvalidRoute is returned when the provider rejects the postal
	// codes of a route. Never retried.
	ErrInvalidRoute = errors.New("invalid postal route")
)

// TariffComparison is the outcome of comparing the public (retail) tariff
// against the contract (negotiated) tariff for one route and weight. Money
// is in kopecks; the delivery window comes from the contract quote.
type TariffComparison struct {
	PublicCostKopecks   int64
	ContractCostKopecks int64
	SavingsKopecks      int64
	SavingsPercent      float64
	MinDays             int
	MaxDays             int
}

// GroupTariffComparison is the comparison for a whole candidate group: the
// sum of per-order public quotes against one contract quote on the summed
// weight. PublicPerOrderKopecks is indexed like the member slice passed to
// CompareGroup, so per-order economics can be stamped at dispatch.
type GroupTariffComparison struct {
	TariffComparison
	PublicPerOrderKopecks []int64
	DestinationPostalCode kernel.PostalCode
	TotalWeightGrams      int
}

// TariffComparator computes public-versus-contract cost comparisons through
// the tariff provider. Calls are idempotent and side-effect-free; every
// provider call inherits the caller's context deadline.
type TariffComparator struct {
	provider ports.TariffProvider
	origin   kernel.PostalCode
}

// NewTariffComparator creates a comparator shipping from the given origin
// index (the consolidation warehouse).
func NewTariffComparator(provider ports.TariffProvider, origin kernel.PostalCode) (*TariffComparator, error) {
	if provider == nil {
		return nil, errs.NewValueIsRequiredError("tariff provider")
	}
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	return &TariffComparator{provider: provider, origin: origin}, nil
}

// Compare quotes a single parcel both ways and derives the savings.
func (c *TariffComparator) Compare(ctx context.Context, dest kernel.PostalCode, weightGrams int) (TariffComparison, error) {
	if err := dest.Validate(); err != nil {
		return TariffComparison{}, err
	}

	public, err := c.provider.GetPublicQuote(ctx, c.origin, dest, weightGrams)
	if err != nil {
		return TariffComparison{}, classifyProviderError("public", err)
	}

	contract, err := c.provider.GetContractQuote(ctx, c.origin, dest, weightGrams)
	if err != nil {
		return TariffComparison{}, classifyProviderError("contract", err)
	}

	savings := public.TotalKopecks - contract.TotalKopecks
	return TariffComparison{
		PublicCostKopecks:   public.TotalKopecks,
		ContractCostKopecks: contract.TotalKopecks,
		SavingsKopecks:      savings,
		SavingsPercent:      SavingsPercent(savings, public.TotalKopecks),
		MinDays:             contract.MinDays,
		MaxDays:             contract.MaxDays,
	}, nil
}

// CompareGroup quotes a candidate group: each member individually at the
// public tariff, and the consolidated shipment at the contract tariff. The
// contract route targets the most frequent recipient index among members,
// ties broken by join order.
func (c *TariffComparator) CompareGroup(ctx context.Context, members []*order.Order) (GroupTariffComparison, error) {
	if len(members) == 0 {
		return GroupTariffComparison{}, errs.NewValueIsRequiredError("group members")
	}

	var (
		perOrder    = make([]int64, len(members))
		publicTotal int64
		totalWeight int
	)
	for i, member := range members {
		if err := member.Validate(); err != nil {
			return GroupTariffComparison{}, err
		}

		quote, err := c.provider.GetPublicQuote(ctx, c.origin,
			member.Recipient().PostalCode(), member.TotalWeightGrams())
		if err != nil {
			return GroupTariffComparison{}, classifyProviderError("public", err)
		}

		perOrder[i] = quote.TotalKopecks
		publicTotal += quote.TotalKopecks
		totalWeight += member.TotalWeightGrams()
	}

	dest := representativeDestination(members)
	contract, err := c.provider.GetContractQuote(ctx, c.origin, dest, totalWeight)
	if err != nil {
		return GroupTariffComparison{}, classifyProviderError("contract", err)
	}

	savings := publicTotal - contract.TotalKopecks
	return GroupTariffComparison{
		TariffComparison: TariffComparison{
			PublicCostKopecks:   publicTotal,
			ContractCostKopecks: contract.TotalKopecks,
			SavingsKopecks:      savings,
			SavingsPercent:      SavingsPercent(savings, publicTotal),
			MinDays:             contract.MinDays,
			MaxDays:             contract.MaxDays,
		},
		PublicPerOrderKopecks: perOrder,
		DestinationPostalCode: dest,
		TotalWeightGrams:      totalWeight,
	}, nil
}

// SavingsPercent returns savings as a percentage of the public cost,
// rounded to one decimal place. Zero when the public cost is zero.
func SavingsPercent(savingsKopecks, publicKopecks int64) float64 {
	if publicKopecks <= 0 {
		return 0
	}
	return decimal.NewFromInt(savingsKopecks).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(publicKopecks)).
		Round(1).
		InexactFloat64()
}

// representativeDestination picks the most frequent recipient index among
// members, ties broken by join order.
func representativeDestination(members []*order.Order) kernel.PostalCode {
	counts := make(map[string]int, len(members))
	for _, member := range members {
		counts[member.Recipient().PostalCode().String()]++
	}

	best := members[0].Recipient().PostalCode()
	bestCount := counts[best.String()]
	for _, member := range members[1:] {
		code := member.Recipient().PostalCode()
		if counts[code.String()] > bestCount {
			best = code
			bestCount = counts[code.String()]
		}
	}
	return best
}

// classifyProviderError keeps ErrInvalidRoute as-is and folds every other
// provider failure into ErrTariffUnavailable.
func classifyProviderError(kind string, err error) error {
	if errors.Is(err, ErrInvalidRoute) {
		return err
	}
	return fmt.Errorf("%w: %s quote: %w", ErrTariffUnavailable, kind, err)
}
