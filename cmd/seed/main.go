package main

import (
	"context"
	"time"

	"tripcast-service/internal/infrastructure/config"
	"tripcast-service/internal/infrastructure/forecast"
	"tripcast-service/internal/infrastructure/persistence"
	"tripcast-service/internal/interface/repository"
	"tripcast-service/pkg/logger"

	"gorm.io/gorm"
)

// Seeds a demo schema whose trips line up with the embedded forecasts,
// and copies the embedded forecasts into MongoDB when FORECAST_SOURCE=mongo.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN, persistence.PostgresOptions{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	if err := gormDB.WithContext(ctx).AutoMigrate(repository.Models()...); err != nil {
		log.Fatal("Failed to migrate schema", "error", err)
	}
	log.Info("Schema migrated")

	if err := seedTrips(ctx, gormDB); err != nil {
		log.Fatal("Failed to seed trips", "error", err)
	}
	log.Info("Demo trips seeded")

	table, err := forecast.LoadEmbedded()
	if err != nil {
		log.Fatal("Failed to load embedded forecasts", "error", err)
	}

	if cfg.ForecastSource != forecast.SourceMongo {
		log.Info("Skipping MongoDB forecasts", "source", cfg.ForecastSource)
		return
	}

	client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	defer client.Disconnect(context.Background())

	forecastRepo := repository.NewMongoForecastRepository(db)
	if err := forecastRepo.UpsertMany(ctx, table.Records()); err != nil {
		log.Fatal("Failed to seed forecasts", "error", err)
	}
	log.Info("Forecasts seeded", "entries", table.Len())
}

func seedTrips(ctx context.Context, db *gorm.DB) error {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	delay := func(v float64) *float64 { return &v }

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		airlines := []repository.AirlineModel{
			{IATACode: "UA", Airline: "United Air Lines Inc."},
			{IATACode: "AA", Airline: "American Airlines Inc."},
		}
		tickets := []repository.TicketModel{
			{ID: 1, FlDate: day(2020, time.February, 4), FlNum: "1234", Carrier: "UA", Origin: "ORD", Dest: "LAX"},
			{ID: 2, FlDate: day(2020, time.February, 6), FlNum: "2345", Carrier: "AA", Origin: "LAX", Dest: "ORD"},
		}
		trips := []repository.TripModel{
			{ID: 1, TicketID: 1},
			{ID: 2, TicketID: 2},
		}
		flights := []repository.FlightModel{
			{ID: 1, Year: 2020, FlDate: day(2020, time.February, 4), Carrier: "UA", FlNum: "1234", Origin: "ORD", Dest: "LAX", DepTime: "0800", ArrTime: "1035"},
			{ID: 2, Year: 2020, FlDate: day(2020, time.February, 6), Carrier: "AA", FlNum: "2345", Origin: "LAX", Dest: "ORD", DepTime: "1330", ArrTime: "1935"},
		}
		history := []repository.FlightHistoryModel{
			{ID: 1, Year: 2018, Month: 2, Day: 4, Carrier: "UA", FlNum: "1234", Origin: "ORD", Dest: "LAX", DepDelay: delay(25)},
			{ID: 2, Year: 2019, Month: 2, Day: 4, Carrier: "UA", FlNum: "1234", Origin: "ORD", Dest: "LAX", DepDelay: delay(-5)},
			{ID: 3, Year: 2019, Month: 2, Day: 4, Carrier: "UA", FlNum: "77", Origin: "ORD", Dest: "SFO", DepDelay: delay(0)},
			{ID: 4, Year: 2018, Month: 2, Day: 4, Carrier: "UA", FlNum: "77", Origin: "ORD", Dest: "SFO", DepDelay: delay(-2)},
			{ID: 5, Year: 2019, Month: 2, Day: 4, Carrier: "UA", FlNum: "88", Origin: "ORD", Dest: "DEN", Cancelled: 1},
			{ID: 6, Year: 2018, Month: 2, Day: 6, Carrier: "AA", FlNum: "2345", Origin: "LAX", Dest: "ORD", DepDelay: delay(12)},
			{ID: 7, Year: 2019, Month: 2, Day: 6, Carrier: "AA", FlNum: "2345", Origin: "LAX", Dest: "ORD", DepDelay: delay(-3)},
		}

		for _, rows := range []interface{}{&airlines, &tickets, &trips, &flights, &history} {
			if err := tx.Save(rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
