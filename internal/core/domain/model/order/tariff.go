package order

import (
	"fmt"

	"ostrov/internal/pkg/errs"
)

// TariffInfo is the per-order economics snapshot stamped when the order's
// group is dispatched: the public tariff the recipient would have paid for
// an individual shipment, the contract share actually paid, and the
// resulting savings. All money is in kopecks.
type TariffInfo struct {
	publicKopecks   int64
	contractKopecks int64
	savingsKopecks  int64
	savingsPercent  float64
	isConstructed   bool
}

// NewTariffInfo creates a validated tariff snapshot. The public quote must be
// positive; the contract share must not be negative.
func NewTariffInfo(publicKopecks, contractKopecks, savingsKopecks int64, savingsPercent float64) (TariffInfo, error) {
	if publicKopecks <= 0 {
		return TariffInfo{}, errs.NewValueIsInvalidErrorWithCause("public tariff",
			fmt.Errorf("%d kopecks is not greater than 0", publicKopecks))
	}
	if contractKopecks < 0 {
		return TariffInfo{}, errs.NewValueIsInvalidErrorWithCause("contract tariff",
			fmt.Errorf("%d kopecks is negative", contractKopecks))
	}

	return TariffInfo{
		publicKopecks:   publicKopecks,
		contractKopecks: contractKopecks,
		savingsKopecks:  savingsKopecks,
		savingsPercent:  savingsPercent,
		isConstructed:   true,
	}, nil
}

// PublicKopecks returns the individual-shipment public quote.
func (t TariffInfo) PublicKopecks() int64 {
	return t.publicKopecks
}

// ContractKopecks returns the order's share of the group contract cost.
func (t TariffInfo) ContractKopecks() int64 {
	return t.contractKopecks
}

// SavingsKopecks returns public minus contract for this order.
func (t TariffInfo) SavingsKopecks() int64 {
	return t.savingsKopecks
}

// SavingsPercent returns the savings as a percentage of the public quote,
// rounded to one decimal place.
func (t TariffInfo) SavingsPercent() float64 {
	return t.savingsPercent
}

// Validate ensures the snapshot was created via NewTariffInfo.
func (t TariffInfo) Validate() error {
	if !t.isConstructed {
		return errs.NewValueIsRequiredError("tariff info must be created via NewTariffInfo")
	}
	return nil
}
