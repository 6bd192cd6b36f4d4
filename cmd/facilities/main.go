package main

import (
	facilityhandler "reservo/internal/facilities/handler"
	facilityrepo "reservo/internal/facilities/repository"
	facilityservice "reservo/internal/facilities/service"
	facilityvalidator "reservo/internal/facilities/validator"
	"reservo/pkg/app"
	"reservo/pkg/config"
	"reservo/pkg/policy"
)

func main() {
	cfg := config.Load("reservo-facilities")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	facilitySvc := facilityservice.NewFacilityService(
		cfg,
		facilityrepo.NewMongoFacilityRepository(cfg),
		facilityvalidator.NewFacilityValidator(),
	)

	handler := facilityhandler.NewFacilityHandler(facilitySvc, policy.NewRolePolicy(), cfg.Log)

	application := app.NewApplication(cfg)
	application.SetApp(handler)
	application.Run()
}
