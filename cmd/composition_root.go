package cmd

import (
	"ostrov/internal/adapters/out/pochta"
	"ostrov/internal/adapters/out/postgres"
	"ostrov/internal/adapters/out/postgres/settingsrepo"
	"ostrov/internal/core/application/usecases/commands"
	"ostrov/internal/core/application/usecases/queries"
	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/core/domain/services"
	"ostrov/internal/core/ports"
	"ostrov/internal/pkg/scopelock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	provider      ports.TariffProvider
	comparator    *services.TariffComparator
	router        *services.HubRouter
	policy        services.GroupingPolicy
	consolidation services.Consolidation
	locks         *scopelock.Registry
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	origin, err := kernel.NewPostalCode(config.SenderPostalCode)
	if err != nil {
		return CompositionRoot{}, err
	}

	provider := pochta.NewClient(config.PochtaPublicBaseURL,
		config.PochtaOtpravkaBaseURL, config.PochtaAPIToken,
		config.PochtaLogin, config.PochtaPassword)

	comparator, err := services.NewTariffComparator(provider, origin)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		provider:      provider,
		comparator:    comparator,
		router:        services.NewHubRouter(),
		policy:        services.NewGroupingPolicy(),
		consolidation: services.NewConsolidation(),
		locks:         scopelock.NewRegistry(),
	}, nil
}

func (c *CompositionRoot) TariffProvider() ports.TariffProvider {
	return c.provider
}

func (c *CompositionRoot) HubRouter() *services.HubRouter {
	return c.router
}

func (c *CompositionRoot) TariffComparator() *services.TariffComparator {
	return c.comparator
}

// SettingsRepository returns a settings store outside any unit of work,
// used by the job layer for cadence checks.
func (c *CompositionRoot) SettingsRepository() ports.SettingsRepository {
	return settingsrepo.NewGormSettingsRepository(c.gormDB)
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitOrderCommandHandler(f, c.router)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateGroupStatusCommandHandler() commands.UpdateGroupStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateGroupStatusCommandHandler(f, c.consolidation, c.locks)
}

func (c *CompositionRoot) CreateForceDispatchGroupCommandHandler() commands.ForceDispatchGroupCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewForceDispatchGroupCommandHandler(f, c.comparator, c.consolidation, c.locks)
}

func (c *CompositionRoot) CreateMarkGroupArrivedCommandHandler() commands.MarkGroupArrivedCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkGroupArrivedCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateGroupingSettingsCommandHandler() commands.UpdateGroupingSettingsCommandHandler {
	var f commands.SettingsUoWFactory = FuncSettingsUoWFactory(func() commands.SettingsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateGroupingSettingsCommandHandler(f)
}

func (c *CompositionRoot) CreateRunConsolidationPassCommandHandler() commands.RunConsolidationPassCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRunConsolidationPassCommandHandler(f, c.comparator,
		c.policy, c.consolidation, c.router, c.locks)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetGroupsQueryHandler() queries.GetGroupsQueryHandler {
	return queries.NewGetGroupsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetGroupQueryHandler() queries.GetGroupQueryHandler {
	return queries.NewGetGroupQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetGroupingSettingsQueryHandler() queries.GetGroupingSettingsQueryHandler {
	return queries.NewGetGroupingSettingsQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSettingsUoWFactory func() commands.SettingsUoW

func (f FuncSettingsUoWFactory) Create() commands.SettingsUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
