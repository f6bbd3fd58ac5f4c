package options

import (
	"errors"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*MonitorOptions)(nil)

// MonitorOptions tunes the derivation engines of the monitor.
type MonitorOptions struct {
	// SamplePeriod is the interval of the metrics sampler.
	SamplePeriod time.Duration `json:"sample-period" mapstructure:"sample-period"`

	// SeriesCapacity caps each rolling chart series. 60 points at a 5s period
	// keep 5 minutes of history.
	SeriesCapacity int `json:"series-capacity" mapstructure:"series-capacity"`

	// PathCount is the number of synthetic corridors vehicle identities are
	// hashed onto for the geospatial projection.
	PathCount int `json:"path-count" mapstructure:"path-count"`

	// ActionCapacity caps the recent operator-action list kept for display.
	ActionCapacity int `json:"action-capacity" mapstructure:"action-capacity"`
}

// NewMonitorOptions creates a MonitorOptions object with default parameters.
func NewMonitorOptions() *MonitorOptions {
	return &MonitorOptions{
		SamplePeriod:   5 * time.Second,
		SeriesCapacity: 60,
		PathCount:      6,
		ActionCapacity: 100,
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *MonitorOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}

	if o.SamplePeriod <= 0 {
		errs = append(errs, errors.New("sample period must be positive"))
	}
	if o.SeriesCapacity <= 0 {
		errs = append(errs, errors.New("series capacity must be positive"))
	}
	if o.PathCount <= 0 {
		errs = append(errs, errors.New("path count must be positive"))
	}
	if o.ActionCapacity <= 0 {
		errs = append(errs, errors.New("action capacity must be positive"))
	}

	return errs
}

// AddFlags adds flags for MonitorOptions to the specified FlagSet.
func (o *MonitorOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.DurationVar(&o.SamplePeriod, "monitor.sample-period", o.SamplePeriod, "Interval of the rolling metrics sampler.")
	fs.IntVar(&o.SeriesCapacity, "monitor.series-capacity", o.SeriesCapacity, "Maximum number of points per rolling chart series.")
	fs.IntVar(&o.PathCount, "monitor.path-count", o.PathCount, "Number of synthetic corridors for the map projection.")
	fs.IntVar(&o.ActionCapacity, "monitor.action-capacity", o.ActionCapacity, "Maximum number of recent operator actions retained.")
}
