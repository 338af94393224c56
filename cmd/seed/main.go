package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/globaltrotters/backend/internal/adapters/memory"
	natsadapter "github.com/globaltrotters/backend/internal/adapters/nats"
	"github.com/globaltrotters/backend/internal/adapters/postgres"
	"github.com/globaltrotters/backend/internal/core/ports"
	"github.com/globaltrotters/backend/internal/core/usecases"
	"github.com/globaltrotters/backend/internal/pkg/config"
	"github.com/globaltrotters/backend/internal/pkg/logging"
)

func main() {
	path := flag.String("f", "fixtures/trips.yaml", "YAML file with trips and their itineraries")
	publish := flag.Bool("publish", false, "publish trip events to NATS")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load("globaltrotters-seed")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := loadFixture(*path)
	if err != nil {
		log.Fatalf("fixture: %v", err)
	}

	var (
		trips      ports.TripRepository
		cities     ports.CityRepository
		days       ports.DayRepository
		activities ports.ActivityRepository
	)
	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		trips, cities, days, activities = store.Trips(), store.Cities(), store.Days(), store.Activities()
	default:
		db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		trips, cities, days, activities = postgres.NewTripRepo(db), postgres.NewCityRepo(db), postgres.NewDayRepo(db), postgres.NewActivityRepo(db)
	}

	var events ports.EventPublisher
	if *publish {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable, events will not be published", "error", err)
		} else {
			defer pub.Close()
			events = pub
		}
	}

	tripSvc := usecases.NewTripService(trips, nil, events)
	importSvc := usecases.NewImportService(trips, cities, days, activities, events)

	failed := 0
	for i, tf := range f.Trips {
		logger := slog.With("index", i, "title", tf.Title)

		in, err := tf.newTrip()
		if err != nil {
			logger.Error("invalid trip", "error", err)
			failed++
			continue
		}
		plan, err := tf.plan()
		if err != nil {
			logger.Error("invalid itinerary", "error", err)
			failed++
			continue
		}

		trip, err := tripSvc.Create(ctx, in)
		if err != nil {
			logger.Error("create trip failed", "error", err)
			failed++
			continue
		}

		summary, err := importSvc.Import(ctx, trip.ID, plan)
		if err != nil {
			logger.Error("import failed", "trip_id", trip.ID, "error", err)
			failed++
			continue
		}
		logger.Info("seeded trip", "trip_id", trip.ID, "cities", summary.Cities, "days", summary.Days, "activities", summary.Activities)
	}

	if failed > 0 {
		slog.Error("seed finished with failures", "failed", failed, "total", len(f.Trips))
		os.Exit(1)
	}
	slog.Info("seed finished", "trips", len(f.Trips))
}
