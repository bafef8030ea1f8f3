package flutter

import "fmt"

// Variant selects which build configuration to produce.
type Variant string

const (
	Debug   Variant = "debug"
	Release Variant = "release"
)

// Flag returns the flutter build flag for the variant.
func (v Variant) Flag() string {
	return "--" + string(v)
}

func (v Variant) String() string {
	return string(v)
}

// Validate rejects anything outside the known variant set.
func (v Variant) Validate() error {
	switch v {
	case Debug, Release:
		return nil
	default:
		return fmt.Errorf("invalid build variant: %q (must be debug or release)", string(v))
	}
}
