package options

import (
	"errors"
	"net/url"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*UpstreamOptions)(nil)

// UpstreamOptions configures the client for the upstream fleet API, which
// serves the bulk vehicle/alert fetch and the alert lifecycle mutations.
type UpstreamOptions struct {
	// BaseURL is the root of the upstream API, e.g. "http://operator-service:8003".
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// Timeout bounds every request made to the upstream API.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// NewUpstreamOptions creates an UpstreamOptions object with default parameters.
func NewUpstreamOptions() *UpstreamOptions {
	return &UpstreamOptions{
		BaseURL: "http://localhost:8003",
		Timeout: 10 * time.Second,
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *UpstreamOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}

	if o.BaseURL == "" {
		errs = append(errs, errors.New("upstream base url is required"))
	} else if _, err := url.Parse(o.BaseURL); err != nil {
		errs = append(errs, err)
	}

	return errs
}

// AddFlags adds flags for UpstreamOptions to the specified FlagSet.
func (o *UpstreamOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.BaseURL, "upstream.base-url", o.BaseURL, "Base URL of the upstream fleet API.")
	fs.DurationVar(&o.Timeout, "upstream.timeout", o.Timeout, "Timeout for upstream API requests.")
}
