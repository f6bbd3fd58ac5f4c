package monitor

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/fleetapi"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/geo"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/ingest"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/kpi"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/server"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/store"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/view"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/pkg/mqtt"
	mqtttopic "github.com/daivikpurani/Autonomous-Fleet-Response-System/pkg/mqtt/topic"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/pkg/options"
)

// Config holds the validated options the monitor is assembled from.
type Config struct {
	HttpOptions     *options.HttpOptions
	MqttOptions     *options.MqttOptions
	UpstreamOptions *options.UpstreamOptions
	MonitorOptions  *options.MonitorOptions
}

// NewMonitor wires the full monitor: store, bootstrap gate, stream consumer,
// upstream client, derivation engines and the HTTP server.
func (cfg *Config) NewMonitor() (*Monitor, error) {
	st := store.New(cfg.MonitorOptions.ActionCapacity)
	gate := store.NewGate(st)

	projector := geo.NewProjector(cfg.MonitorOptions.PathCount)
	views := view.NewViews(st, projector)
	sampler := kpi.NewSampler(cfg.MonitorOptions.SamplePeriod, cfg.MonitorOptions.SeriesCapacity, views.SnapshotAt)

	fleet := fleetapi.NewClient(cfg.UpstreamOptions.BaseURL, cfg.UpstreamOptions.Timeout)

	mqttClient, topicBuilder, err := cfg.initMqttClientAndTopicBuilder()
	if err != nil {
		return nil, fmt.Errorf("failed to init mqtt client: %w", err)
	}
	consumer := ingest.NewConsumer(mqttClient, topicBuilder, gate)

	m := &Monitor{
		store:    st,
		gate:     gate,
		views:    views,
		sampler:  sampler,
		fleet:    fleet,
		consumer: consumer,
	}

	m.server = server.New(cfg.HttpOptions, &server.Dependencies{
		Store:     st,
		Views:     views,
		Sampler:   sampler,
		Lifecycle: m,
		Ready:     gate.Ready,
	})

	return m, nil
}

func (cfg *Config) initMqttClientAndTopicBuilder() (mqtt.Client, *mqtttopic.Builder, error) {
	topicBuilder := mqtttopic.NewBuilder(cfg.MqttOptions.TopicRoot)

	mqttConfig := cfg.MqttOptions.ToClientConfig()
	if mqttConfig.ClientID == "" {
		mqttConfig.ClientID = fmt.Sprintf("afrs-monitor-%s", uuid.NewString()[:8])
	}

	mqttClient, err := mqtt.NewClient(mqttConfig)
	if err != nil {
		return nil, nil, err
	}

	return mqttClient, topicBuilder, nil
}
