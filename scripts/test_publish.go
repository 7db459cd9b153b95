//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const stream = "stream:waterpoint:register"

type window struct {
	Day       int `json:"day"`
	StartHour int `json:"startHour"`
	EndHour   int `json:"endHour"`
}

type registrationEvent struct {
	EventID      uuid.UUID `json:"event_id"`
	OwnerName    string    `json:"owner_name"`
	Phone        string    `json:"phone"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Area         string    `json:"area"`
	SubArea      string    `json:"sub_area,omitempty"`
	Address      string    `json:"address"`
	Location     *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location,omitempty"`
	Availability []window  `json:"availability"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	group := flag.String("group", "waterpoint-registration-workers", "Worker consumer group")
	flag.Parse()

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := registrationEvent{
		EventID:   uuid.New(),
		OwnerName: "Test Owner",
		Phone:     "0820000000",
		Name:      "Test Yard Borehole",
		Type:      "borehole",
		Area:      "Sebokeng",
		SubArea:   "Zone 3",
		Address:   "1 Test Street, Sebokeng Zone 3",
		Availability: []window{
			{Day: 1, StartHour: 7, EndHour: 9},
			{Day: 6, StartHour: 10, EndHour: 13},
		},
		SubmittedAt: time.Now().UTC(),
	}
	event.Location = &struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}{Latitude: -26.5841, Longitude: 27.8529}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", stream)
	fmt.Printf("   Message ID: %s\n", id)
	fmt.Printf("   Event ID: %s\n", event.EventID)

	// ждём пока воркер прочитает и подтвердит сообщение
	fmt.Printf("\nWaiting for group %q to ack...\n", *group)
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		time.Sleep(time.Second)

		groups, err := client.XInfoGroups(ctx, stream).Result()
		if err != nil {
			continue
		}
		for _, g := range groups {
			if g.Name != *group {
				continue
			}
			if g.LastDeliveredID >= id && g.Pending == 0 {
				fmt.Printf("Processed. Check GET /api/v1/water-points/%s\n", event.EventID)
				return
			}
		}
	}
	fmt.Println("Timeout waiting for the worker")
}
