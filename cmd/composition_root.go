package cmd

import (
	"log/slog"

	"fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/inventory"
	"fulfillment/internal/adapters/out/kafkaout"
	postgresadapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/rates"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services, and use case handlers.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgresadapter.GormUnitOfWorkFactory

	rateHolder      *services.RateHolder
	rateSource      ports.RateSource
	rateRefreshSpec string
	inventory       ports.InventoryClient
	publisher       *kafkaout.OrderChangedPublisher

	logger *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:          gormDB,
		uowFactory:      postgresadapter.NewGormUnitOfWorkFactory(gormDB),
		rateHolder:      services.NewRateHolder(nil),
		rateSource:      rates.NewHTTPSource(config.RateProviderURL),
		rateRefreshSpec: config.RateRefreshSchedule,
		inventory:       inventory.NewClient(config.InventoryServiceURL),
		publisher: kafkaout.NewOrderChangedPublisher(
			[]string{config.KafkaHost}, config.KafkaOrderChangedTopic),
		logger: logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCurrencyConverter() services.CurrencyConverter {
	return services.NewCurrencyConverter(c.rateHolder, c.logger)
}

func (c *CompositionRoot) CreateSettlementCalculator() services.SettlementCalculator {
	return services.NewSettlementCalculator(c.CreateCurrencyConverter())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(
		c.orderUoWFactory(), c.inventory, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSetSettlementInputsCommandHandler() commands.SetSettlementInputsCommandHandler {
	return commands.NewSetSettlementInputsCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSubmitReturnCommandHandler() commands.SubmitReturnCommandHandler {
	return commands.NewSubmitReturnCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateVerifyReturnCommandHandler() commands.VerifyReturnCommandHandler {
	return commands.NewVerifyReturnCommandHandler(
		c.orderUoWFactory(), c.inventory, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderSummaryQueryHandler() queries.GetOrderSummaryQueryHandler {
	aggregator := services.NewSummaryAggregator(c.CreateSettlementCalculator())
	return queries.NewGetOrderSummaryQueryHandler(
		c.uowFactory.Create().OrderRepository(), aggregator)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateAssignDriverCommandHandler(),
		c.CreateSetSettlementInputsCommandHandler(),
		c.CreateSubmitReturnCommandHandler(),
		c.CreateVerifyReturnCommandHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetOrderSummaryQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.rateSource, c.rateHolder, c.rateRefreshSpec, c.logger)
}

func (c *CompositionRoot) ClosePublisher() error {
	return c.publisher.Close()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
