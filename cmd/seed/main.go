// Command seed inserts a sample catalog into the configured store for local
// development. Existing items are left alone; running it twice doubles the
// catalog, so point it at a throwaway database.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/stockroom/backend/internal/config"
	"github.com/stockroom/backend/internal/logger"
	"github.com/stockroom/backend/internal/models"
	"github.com/stockroom/backend/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc, err := services.NewMongoItemService(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer svc.Close(ctx)

	for _, req := range sampleItems() {
		item, err := svc.Create(ctx, req)
		if err != nil {
			log.Error("seed insert failed", "name", req.Name, "error", err)
			os.Exit(1)
		}
		log.Info("seeded item", "id", item.ID, "name", item.Name, "price", item.Price)
	}
	log.Info("seeding complete", "db", cfg.MongoDatabase)
}

func sampleItems() []*models.CreateItemRequest {
	mk := func(name, description string, price float64, quantity int) *models.CreateItemRequest {
		return &models.CreateItemRequest{
			Name:        name,
			Description: description,
			Price:       &price,
			Quantity:    &quantity,
		}
	}
	return []*models.CreateItemRequest{
		mk("Widget A", "Entry-level widget", 10, 120),
		mk("Widget B", "Heavy-duty widget", 50, 35),
		mk("Gadget", "General purpose gadget", 30, 60),
		mk("Sprocket", "Spare sprocket, fits most widgets", 4.5, 500),
		mk("Flux Capacitor", "Display model, non-functional", 1955, 1),
	}
}
