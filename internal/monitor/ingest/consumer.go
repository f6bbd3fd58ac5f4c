// Package ingest implements the MQTT ingress boundary: it subscribes to the
// event feed, decodes stream envelopes and forwards the carried records into
// the reconciliation store. Malformed events are dropped here, counted and
// logged, so the store itself only ever sees well-formed records.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/store"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/pkg/metrics"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/pkg/log"
	pkgmqtt "github.com/daivikpurani/Autonomous-Fleet-Response-System/pkg/mqtt"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/pkg/mqtt/topic"
)

// Consumer is the MQTT stream consumer.
type Consumer struct {
	client     pkgmqtt.Client
	topics     *topic.Builder
	sink       store.Applier
	subscribed chan struct{}
}

// NewConsumer creates a consumer that applies decoded records to sink.
// The connectivity gauge tracks the client's connection state.
func NewConsumer(client pkgmqtt.Client, builder *topic.Builder, sink store.Applier) *Consumer {
	client.OnConnectionChange(func(connected bool) {
		if connected {
			metrics.BrokerConnectivityStatus.Set(1)
		} else {
			metrics.BrokerConnectivityStatus.Set(0)
		}
	})

	return &Consumer{
		client:     client,
		topics:     builder,
		sink:       sink,
		subscribed: make(chan struct{}),
	}
}

// Subscribed is closed once every topic filter is active. The bootstrap
// sequence waits on it so no stream record can slip past unbuffered while
// the bulk fetch is in flight.
func (c *Consumer) Subscribed() <-chan struct{} {
	return c.subscribed
}

// Start connects to the broker, subscribes to the event feed and blocks
// until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	if err := c.client.Start(ctx); err != nil {
		return err
	}

	// Ensure MQTT disconnects when Start exits (LIFO order).
	defer func() {
		log.Info("Disconnecting MQTT client...")
		// Use a fresh context with timeout to ensure the disconnect packet sends.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.client.Disconnect(shutdownCtx)
		log.Info("MQTT client disconnected")
	}()

	log.Info("Waiting for MQTT connection...")
	if err := c.client.AwaitConnection(ctx); err != nil {
		return err
	}
	log.Info("MQTT Connected")

	if err := c.initSubscriptions(ctx); err != nil {
		return err
	}
	close(c.subscribed)

	<-ctx.Done()

	return nil
}

func (c *Consumer) initSubscriptions(ctx context.Context) error {
	const qos = 1

	filters := []string{
		c.topics.VehicleWildcard(),
		c.topics.AlertWildcard(),
		c.topics.ActionWildcard(),
	}

	for _, filter := range filters {
		if err := c.client.Subscribe(ctx, filter, qos, c.handleMessage); err != nil {
			return fmt.Errorf("failed to subscribe to topic: %s, err: %w", filter, err)
		}
	}

	return nil
}

func (c *Consumer) handleMessage(_ context.Context, topic string, payload []byte) {
	if err := Apply(c.sink, payload); err != nil {
		log.Error(err, "Dropped stream event", "topic", topic)
	}
}
