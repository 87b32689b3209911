package main

import (
	availabilityhandler "shiftboard/internal/availability/handler"
	availabilityrepo "shiftboard/internal/availability/repository"
	availabilityservice "shiftboard/internal/availability/service"
	availabilityvalidator "shiftboard/internal/availability/validator"
	"shiftboard/internal/events"
	identityhandler "shiftboard/internal/identity/handler"
	identityrepo "shiftboard/internal/identity/repository"
	identityservice "shiftboard/internal/identity/service"
	lockshandler "shiftboard/internal/locks/handler"
	locksrepo "shiftboard/internal/locks/repository"
	locksservice "shiftboard/internal/locks/service"
	locksvalidator "shiftboard/internal/locks/validator"
	shiftshandler "shiftboard/internal/shifts/handler"
	shiftsrepo "shiftboard/internal/shifts/repository"
	shiftsservice "shiftboard/internal/shifts/service"
	"shiftboard/pkg/app"
	"shiftboard/pkg/config"
	"shiftboard/pkg/contracts"
	"shiftboard/pkg/kafka"
	kafka_config "shiftboard/pkg/kafka/config"
	kafka_middleware "shiftboard/pkg/kafka/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const ServiceName = "shiftboard"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Shiftboard service")

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	publisher := initPublisher(cfg, reg)
	handlers := initHandlers(cfg, reg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.OnShutdown("events", publisher)
	serverApp.SetApp(reg, handlers...)
	serverApp.Run()
}

// initPublisher returns a Kafka-backed publisher when events are enabled and
// a no-op otherwise. Events are cache hints; the service runs without them.
func initPublisher(cfg *config.Config, reg prometheus.Registerer) events.Publisher {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Change events disabled")
		return events.NoopPublisher{}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.EventsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.NewProducerMetrics(reg).Middleware())
	}

	cfg.Log.Info("Change events enabled", "topic", producer.Topic())
	return events.NewKafkaPublisher(producer, ServiceName)
}

func initHandlers(cfg *config.Config, reg prometheus.Registerer, publisher events.Publisher) []contracts.Handler {
	identity := identityservice.NewIdentityService(
		identityrepo.NewMongoUserRepository(cfg),
		identityrepo.NewMongoDoctorRepository(cfg),
		cfg,
	)

	locks := locksservice.NewLockService(
		locksrepo.NewMongoLockRepository(cfg),
		publisher,
		locksservice.NewMetrics(reg),
		cfg,
	)

	store := availabilityservice.NewStore(availabilityrepo.NewMongoConstraintRepository(cfg), cfg)
	guard := availabilityservice.NewGuard(
		identity,
		locks,
		store,
		publisher,
		availabilityservice.NewGuardMetrics(reg),
		cfg,
	)

	shifts := shiftsservice.NewShiftService(shiftsrepo.NewMongoShiftRepository(cfg), cfg)

	cfg.Log.Info("Shiftboard services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		identityhandler.NewIdentityHandler(identity, cfg.Log),
		lockshandler.NewLockHandler(locks, identity, locksvalidator.NewLockValidator(), cfg.Log),
		availabilityhandler.NewAvailabilityHandler(store, guard, availabilityvalidator.NewAvailabilityValidator(), cfg.Log),
		shiftshandler.NewShiftHandler(shifts, cfg.Log),
	}
}
