package options

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/pkg/log"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/pkg/options"
)

// MonitorServerOptions aggregates every tunable of the monitor binary.
type MonitorServerOptions struct {
	Http     *options.HttpOptions     `json:"http" mapstructure:"http"`
	Mqtt     *options.MqttOptions     `json:"mqtt" mapstructure:"mqtt"`
	Upstream *options.UpstreamOptions `json:"upstream" mapstructure:"upstream"`
	Monitor  *options.MonitorOptions  `json:"monitor" mapstructure:"monitor"`
	Log      *log.Options             `json:"log" mapstructure:"log"`
}

// NewMonitorServerOptions creates options with defaults.
func NewMonitorServerOptions() *MonitorServerOptions {
	return &MonitorServerOptions{
		Http:     options.NewHttpOptions(),
		Mqtt:     options.NewMqttOptions(),
		Upstream: options.NewUpstreamOptions(),
		Monitor:  options.NewMonitorOptions(),
		Log:      log.NewOptions(),
	}
}

// AddFlags registers every option group on the flag set.
func (o *MonitorServerOptions) AddFlags(fs *pflag.FlagSet) {
	o.Http.AddFlags(fs)
	o.Mqtt.AddFlags(fs)
	o.Upstream.AddFlags(fs)
	o.Monitor.AddFlags(fs)
	o.Log.AddFlags(fs)
}

// Validate aggregates the option group validations into one error.
func (o *MonitorServerOptions) Validate() error {
	var errs []error
	errs = append(errs, o.Http.Validate()...)
	errs = append(errs, o.Mqtt.Validate()...)
	errs = append(errs, o.Upstream.Validate()...)
	errs = append(errs, o.Monitor.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return errors.Join(errs...)
}

// Config builds the monitor configuration from the validated options.
func (o *MonitorServerOptions) Config() (*monitor.Config, error) {
	return &monitor.Config{
		HttpOptions:     o.Http,
		MqttOptions:     o.Mqtt,
		UpstreamOptions: o.Upstream,
		MonitorOptions:  o.Monitor,
	}, nil
}
