package main

import (
	bookinghandler "reservo/internal/bookings/handler"
	bookingrepo "reservo/internal/bookings/repository"
	bookingservice "reservo/internal/bookings/service"
	bookingvalidator "reservo/internal/bookings/validator"
	facilityrepo "reservo/internal/facilities/repository"
	facilityservice "reservo/internal/facilities/service"
	facilityvalidator "reservo/internal/facilities/validator"
	"reservo/pkg/app"
	"reservo/pkg/config"
	"reservo/pkg/kafka"
	kafka_config "reservo/pkg/kafka/config"
	kafka_middleware "reservo/pkg/kafka/middleware"
	"reservo/pkg/policy"
)

func main() {
	cfg := config.Load("reservo-bookings")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	kafkaCfg := kafka_config.Load()
	producer, err := kafka.NewProducer(kafkaCfg, kafka_config.DefaultBookingEventsTopic, kafka_config.DefaultBookingEventsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	defer producer.Close()

	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.MetricsProducerMiddleware())
	}

	facilitySvc := facilityservice.NewFacilityService(
		cfg,
		facilityrepo.NewMongoFacilityRepository(cfg),
		facilityvalidator.NewFacilityValidator(),
	)

	bookingSvc := bookingservice.NewBookingService(
		cfg,
		bookingrepo.NewMongoBookingRepository(cfg),
		bookingrepo.NewSlotLockRepository(cfg),
		facilitySvc,
		bookingvalidator.NewBookingValidator(),
		producer,
	)

	handler := bookinghandler.NewBookingHandler(bookingSvc, policy.NewRolePolicy(), cfg.Log)

	application := app.NewApplication(cfg)
	application.SetApp(handler)
	application.Run()
}
