package sheet

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Options configures a sheet's interactive behavior. The zero value is not
// usable; start from DefaultOptions.
type Options struct {
	// DefaultOpen opens the sheet on mount when the open state is not
	// externally controlled.
	DefaultOpen bool `yaml:"default_open"`

	// Modal sheets lock background scroll and dismiss on outside presses.
	Modal bool `yaml:"modal"`

	// Dismissible allows drag-to-close and outside dismissal. A
	// non-dismissible sheet ignores presses entirely.
	Dismissible bool `yaml:"dismissible"`

	// ShouldScaleBackground enables the stacked-card visual on the page
	// background while the sheet is open.
	ShouldScaleBackground bool `yaml:"scale_background"`

	// CloseThreshold is the fraction of the visible sheet height that a
	// slow drag must cover before release commits a close. In (0, 1].
	CloseThreshold float64 `yaml:"close_threshold"`

	// ScrollLockTimeout is the cooldown after a drag is vetoed in favor
	// of native scrolling; further drags are ignored while it runs and
	// the sheet sits at rest.
	ScrollLockTimeout time.Duration `yaml:"scroll_lock_timeout"`
}

// UnmarshalYAML decodes Options, accepting Go duration strings ("500ms")
// for scroll_lock_timeout. Omitted keys keep their current values, so
// decoding over DefaultOptions applies defaults.
func (o *Options) UnmarshalYAML(value *yaml.Node) error {
	type raw struct {
		DefaultOpen           bool    `yaml:"default_open"`
		Modal                 bool    `yaml:"modal"`
		Dismissible           bool    `yaml:"dismissible"`
		ShouldScaleBackground bool    `yaml:"scale_background"`
		CloseThreshold        float64 `yaml:"close_threshold"`
		ScrollLockTimeout     string  `yaml:"scroll_lock_timeout"`
	}
	r := raw{
		DefaultOpen:           o.DefaultOpen,
		Modal:                 o.Modal,
		Dismissible:           o.Dismissible,
		ShouldScaleBackground: o.ShouldScaleBackground,
		CloseThreshold:        o.CloseThreshold,
	}
	if o.ScrollLockTimeout != 0 {
		r.ScrollLockTimeout = o.ScrollLockTimeout.String()
	}
	if err := value.Decode(&r); err != nil {
		return err
	}
	o.DefaultOpen = r.DefaultOpen
	o.Modal = r.Modal
	o.Dismissible = r.Dismissible
	o.ShouldScaleBackground = r.ShouldScaleBackground
	o.CloseThreshold = r.CloseThreshold
	if r.ScrollLockTimeout != "" {
		d, err := time.ParseDuration(r.ScrollLockTimeout)
		if err != nil {
			return fmt.Errorf("sheet: scroll_lock_timeout: %w", err)
		}
		o.ScrollLockTimeout = d
	}
	return nil
}

// DefaultOptions returns the stock configuration: modal, dismissible,
// 25% close threshold, 500ms scroll-lock cooldown.
func DefaultOptions() Options {
	return Options{
		Modal:             true,
		Dismissible:       true,
		CloseThreshold:    0.25,
		ScrollLockTimeout: 500 * time.Millisecond,
	}
}

// Validate normalizes zero values to defaults and rejects out-of-range
// settings.
func (o *Options) Validate() error {
	if o.CloseThreshold == 0 {
		o.CloseThreshold = 0.25
	}
	if o.CloseThreshold <= 0 || o.CloseThreshold > 1 {
		return fmt.Errorf("sheet: close_threshold %v out of range (0, 1]", o.CloseThreshold)
	}
	if o.ScrollLockTimeout == 0 {
		o.ScrollLockTimeout = 500 * time.Millisecond
	}
	if o.ScrollLockTimeout < 0 {
		return fmt.Errorf("sheet: scroll_lock_timeout %v must be positive", o.ScrollLockTimeout)
	}
	return nil
}

// LoadOptions reads Options from a yaml file, applying defaults for any
// omitted field.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("sheet: read options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("sheet: parse options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
