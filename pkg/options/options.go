package options

import (
	"fmt"
	"net"

	"github.com/spf13/pflag"
)

// IOptions is the contract every option group implements so that composed
// command options can validate and register them uniformly.
type IOptions interface {
	// Validate checks the option values and returns all problems found.
	Validate() []error

	// AddFlags binds the options to the given FlagSet.
	AddFlags(fs *pflag.FlagSet, prefixes ...string)
}

// ValidateAddress checks that addr is a valid "host:port" address.
func ValidateAddress(addr string) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	return nil
}
