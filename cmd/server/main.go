package main

import (
	"context"
	"log"
	"time"

	"foodorder/config"
	httpapi "foodorder/internal/api/http"
	"foodorder/internal/cart"
	"foodorder/internal/gen"
	"foodorder/internal/relay"
	"foodorder/internal/service"
	"foodorder/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	writer := config.NewKafkaWriter(config.OrderFeedTopic)
	defer writer.Close()
	publisher := storage.NewKafkaPublisher(writer)

	reader := config.NewKafkaReader(config.OrderFeedTopic, "server-board")
	defer reader.Close()

	sessions := storage.NewRedisSessionStore(rdb, 12*time.Hour)
	tables := config.Tables()

	menuSvc := service.NewMenuService(repo, gen.NewClient(config.GenEndpoint(), config.GenAPIKey()), publisher)
	orderSvc := service.NewOrderService(repo, publisher, tables)
	reportSvc := service.NewReportService(repo, storage.NewRedisSalesMirror(rdb))
	authSvc := service.NewAuthService(config.StaffPassword(), sessions)

	bus := relay.NewBus()
	board := relay.NewBoard()
	board.Attach(bus)

	// Seed the board with existing history before live events start.
	if orders, err := repo.ListOrders(); err != nil {
		log.Printf("Failed to load initial orders: %v", err)
	} else {
		board.Load(orders)
	}

	feed := relay.NewKafkaFeed(reader, bus)
	go feed.Run(context.Background())

	handler := httpapi.NewHandler(
		menuSvc,
		orderSvc,
		reportSvc,
		authSvc,
		cart.NewRegistry(),
		sessions,
		board,
		bus,
		service.TableQRGenerator{BaseURL: config.BaseURL()},
		tables,
	)

	httpapi.StartServer(config.ListenAddr(), httpapi.NewRouter(handler))
}
