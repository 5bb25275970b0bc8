// boardd consumes the order feed and mirrors per-day settled revenue and
// order counts into Redis for quick dashboard reads.
package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"foodorder/config"
	"foodorder/internal/domain"
	"foodorder/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	reader := config.NewKafkaReader(config.OrderFeedTopic, "boardd")
	defer reader.Close()

	repo := storage.NewPostgresRepository(db)
	mirror := storage.NewRedisSalesMirror(rdb)
	ctx := context.Background()

	log.Println("Starting sales mirror consumer...")
	for {
		message, err := reader.ReadMessage(ctx)
		if err != nil {
			log.Printf("Error reading feed message: %v", err)
			continue
		}

		var msg storage.OrderFeedMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			log.Printf("Error unmarshaling feed message: %v", err)
			continue
		}

		if msg.Type != storage.FeedStatusChanged || msg.Status != domain.StatusPaid {
			continue
		}

		order, err := repo.GetOrder(msg.OrderID)
		if err != nil {
			log.Printf("Error loading settled order %s: %v", msg.OrderID, err)
			continue
		}

		date := time.UnixMilli(order.Timestamp).Format("2006-01-02")
		if err := mirror.AddSettledOrder(ctx, date, order.ID, order.Total); err != nil {
			log.Printf("Error mirroring sales for %s: %v", date, err)
			continue
		}

		log.Printf("Mirrored settled order %s into %s", order.ID, date)
	}
}
