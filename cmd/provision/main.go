package main

import (
	"context"
	"flag"
	"log"
	"time"

	"lrbook/internal/config"
	"lrbook/internal/modules/auth"
	"lrbook/internal/provision"
	"lrbook/internal/server"
)

func main() {
	seedLocation := flag.Bool("seed-default-location", false, "create the default origin city and location")
	defaultCode := flag.String("default-code", "HYD", "code for the default origin location")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repos, err := server.OpenStorage(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer func() { _ = repos.Close(context.Background()) }()

	res, err := provision.Run(ctx, repos, auth.HashPassword, provision.Options{
		AdminEmail:          cfg.Admin.Email,
		AdminPassword:       cfg.Admin.Password,
		AdminName:           cfg.Admin.Name,
		SeedDefaultLocation: *seedLocation,
		DefaultLocation:     cfg.Booking.DefaultLocation,
		DefaultCode:         *defaultCode,
	})
	if err != nil {
		log.Fatalf("provision failed: %v", err)
	}
	log.Printf("provision completed: admin_created=%t city_created=%t location_created=%t",
		res.AdminCreated, res.CityCreated, res.LocationCreated)
}
