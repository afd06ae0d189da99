package cmd

import (
	"repairdispatch/internal/adapters/out/postgres"
	"repairdispatch/internal/core/application/usecases/commands"
	"repairdispatch/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateDispatchRequestCommandHandler() commands.DispatchRequestCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchRequestCommandHandler(f)
}

func (c *CompositionRoot) CreateAcceptOfferCommandHandler() commands.AcceptOfferCommandHandler {
	var f commands.RequestOfferUoWFactory = FuncRequestOfferUoWFactory(func() commands.RequestOfferUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOfferCommandHandler(f)
}

func (c *CompositionRoot) CreateDeclineOfferCommandHandler() commands.DeclineOfferCommandHandler {
	var f commands.OfferUoWFactory = FuncOfferUoWFactory(func() commands.OfferUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeclineOfferCommandHandler(f)
}

func (c *CompositionRoot) CreateExpireOffersCommandHandler() commands.ExpireOffersCommandHandler {
	var f commands.RequestOfferUoWFactory = FuncRequestOfferUoWFactory(func() commands.RequestOfferUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpireOffersCommandHandler(f)
}

func (c *CompositionRoot) CreateGetProviderOffersQueryHandler() queries.GetProviderOffersQueryHandler {
	return queries.NewGetProviderOffersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnassignedRequestsQueryHandler() queries.GetUnassignedRequestsQueryHandler {
	return queries.NewGetUnassignedRequestsQueryHandler(c.gormDB)
}

type FuncOfferUoWFactory func() commands.OfferUoW

func (f FuncOfferUoWFactory) Create() commands.OfferUoW {
	return f()
}

type FuncRequestOfferUoWFactory func() commands.RequestOfferUoW

func (f FuncRequestOfferUoWFactory) Create() commands.RequestOfferUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
