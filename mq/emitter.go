package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const channel = "roost-events"

// Event is an entity lifecycle notification published for downstream
// consumers (indexers, audit, cache warmers).
type Event struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Method     string `json:"method"`
}

// Emitter publishes events to a Redis channel. A nil Emitter (or one
// without a client) drops events silently, so handlers can emit without
// caring whether Redis is configured.
type Emitter struct {
	client *redis.Client
}

func NewEmitter(client *redis.Client) *Emitter {
	return &Emitter{client: client}
}

// Emit is fire-and-forget: failures are logged, never propagated.
func (e *Emitter) Emit(name string, event Event) {
	if e == nil || e.client == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[mq] marshal %s failed: %v", name, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := e.client.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[mq] publish %s failed: %v", name, err)
	}
}
