package cmd

import (
	"log/slog"
	"net/http"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/metrics"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/slognotifier"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	registry   *prometheus.Registry
	logger     *slog.Logger

	passMetrics *metrics.PassMetrics
	httpMetrics *metrics.HTTPMetrics
	closers     []func()
}

// NewCompositionRoot wires the adapters. Notifications go to Kafka when
// KAFKA_HOST is set and to the log otherwise.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	root := &CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB, logger),
		registry:    registry,
		logger:      logger,
		passMetrics: metrics.NewPassMetrics(registry),
		httpMetrics: metrics.NewHTTPMetrics(registry),
	}

	if brokers := config.KafkaBrokers(); len(brokers) > 0 {
		notifier, err := kafka.NewNotifier(brokers, config.KafkaOrderChangedTopic)
		if err != nil {
			return nil, err
		}
		root.notifier = notifier
		root.closers = append(root.closers, notifier.Close)
		logger.Info("Notifications are published to Kafka", "topic", config.KafkaOrderChangedTopic)
	} else {
		root.notifier = slognotifier.NewNotifier(logger)
		logger.Info("KAFKA_HOST is empty, notifications are logged only")
	}

	return root, nil
}

// Close releases the adapters opened by NewCompositionRoot.
func (c *CompositionRoot) Close() {
	for _, closeFn := range c.closers {
		closeFn()
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderReader() queries.OrderReader {
	return orderrepo.NewGormOrderRepository(c.gormDB, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSetOrderStatusCommandHandler() commands.SetOrderStatusCommandHandler {
	return commands.NewSetOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSetDeliveryStatusCommandHandler() commands.SetDeliveryStatusCommandHandler {
	return commands.NewSetDeliveryStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceDeliveriesCommandHandler() commands.AdvanceDeliveriesCommandHandler {
	return commands.NewAdvanceDeliveriesCommandHandler(
		c.orderUoWFactory(),
		c.notifier,
		services.NewDeliveryAdvancer(),
		commands.DeliveryPassSettings{
			Workers: c.config.DeliveryWorkers,
			Budget:  c.config.DeliveryPassTimeout,
		},
	)
}

func (c *CompositionRoot) CreateGetOrdersByEmailQueryHandler() queries.GetOrdersByEmailQueryHandler {
	return queries.NewGetOrdersByEmailQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetRecentOrdersQueryHandler() queries.GetRecentOrdersQueryHandler {
	return queries.NewGetRecentOrdersQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetOrderDetailQueryHandler() queries.GetOrderDetailQueryHandler {
	return queries.NewGetOrderDetailQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateDeliveryTransitionJob() *jobs.DeliveryTransitionJob {
	handler := c.CreateAdvanceDeliveriesCommandHandler()
	return jobs.NewDeliveryTransitionJob(&handler, c.passMetrics, c.config.DeliverySchedule, c.logger)
}

// CreateHTTPServer builds the echo router. The delivery pass trigger shares
// the scheduled job so manual and scheduled passes never overlap.
func (c *CompositionRoot) CreateHTTPServer(job *jobs.DeliveryTransitionJob) http.Handler {
	server := httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateSetOrderStatusCommandHandler(),
		c.CreateSetDeliveryStatusCommandHandler(),
		c.CreateGetOrdersByEmailQueryHandler(),
		c.CreateGetRecentOrdersQueryHandler(),
		c.CreateGetOrderDetailQueryHandler(),
		c.CreateGetAllOrdersQueryHandler(),
		job,
		c.logger,
	)

	metricsHandler := promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
	return httpin.NewRouter(server, metricsHandler, c.logger, c.httpMetrics.Middleware())
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
