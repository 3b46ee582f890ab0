package commands

import (
	"time"

	"ostrov/internal/core/domain/model/group"
	"ostrov/internal/core/domain/model/order"
	"ostrov/internal/core/domain/services"
)

// applyComparison stamps a group-level tariff comparison onto the group and
// all of its members. The contract cost is split between members in
// proportion to their public quotes, with the last member absorbing the
// integer-division remainder so the shares sum exactly to the contract
// total.
func applyComparison(g *group.Group, members []*order.Order,
	comparison *services.GroupTariffComparison, now time.Time) error {
	contract := comparison.ContractCostKopecks
	economics, err := group.NewEconomics(comparison.PublicCostKopecks, &contract,
		comparison.SavingsKopecks, comparison.SavingsPercent)
	if err != nil {
		return err
	}
	if err = g.SetEconomics(economics, now); err != nil {
		return err
	}

	var allocated int64
	for i, member := range members {
		public := comparison.PublicPerOrderKopecks[i]

		var share int64
		if i == len(members)-1 {
			share = contract - allocated
		} else if comparison.PublicCostKopecks > 0 {
			share = contract * public / comparison.PublicCostKopecks
		}
		allocated += share

		savings := public - share
		tariff, tariffErr := order.NewTariffInfo(public, share, savings,
			services.SavingsPercent(savings, public))
		if tariffErr != nil {
			return tariffErr
		}
		if tariffErr = member.SetTariff(tariff, now); tariffErr != nil {
			return tariffErr
		}
	}
	return nil
}
