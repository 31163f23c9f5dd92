package viewport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config tunes interaction feel. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	// MotionFactor scales every drag gesture.
	MotionFactor float64 `toml:"motion_factor"`
	// DollyBase is raised to the scaled drag distance to get the drag dolly
	// factor.
	DollyBase float64 `toml:"dolly_base"`
	// WheelFactor is raised to the notch count to get the wheel dolly factor.
	WheelFactor float64 `toml:"wheel_factor"`
	// FlyDuration is the length of animated camera resets in seconds.
	FlyDuration float64 `toml:"fly_duration"`
	// Debug enables stderr logging and contract assertions.
	Debug bool `toml:"debug"`
}

// DefaultConfig returns the standard trackball tuning.
func DefaultConfig() Config {
	return Config{
		MotionFactor: 10,
		DollyBase:    1.1,
		WheelFactor:  1.1,
		FlyDuration:  0.5,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.MotionFactor <= 0:
		return fmt.Errorf("motion_factor must be positive, got %v", c.MotionFactor)
	case c.DollyBase <= 1:
		return fmt.Errorf("dolly_base must be greater than 1, got %v", c.DollyBase)
	case c.WheelFactor <= 1:
		return fmt.Errorf("wheel_factor must be greater than 1, got %v", c.WheelFactor)
	case c.FlyDuration < 0:
		return fmt.Errorf("fly_duration must not be negative, got %v", c.FlyDuration)
	}
	return nil
}

// ReadConfig decodes TOML from r over DefaultConfig. Unknown keys are
// rejected.
func ReadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("parse config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ParseConfig decodes a TOML document. Keys it leaves out keep their
// defaults.
func ParseConfig(data []byte) (Config, error) {
	return ReadConfig(bytes.NewReader(data))
}

// LoadConfig reads a TOML config file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	defer f.Close()
	return ReadConfig(f)
}
