package lod

import "fmt"

// Mode selects how a channel's step is chosen over time.
type Mode uint8

const (
	// ModeStatic pins the channel to one fixed step; the size metric is
	// never consulted.
	ModeStatic Mode = iota
	// ModeContinuous re-evaluates the size metric every tick and switches
	// immediately in either direction.
	ModeContinuous
	// ModeProgressive walks from step 0 toward the final step, advancing
	// exactly once per completed generation cycle and never regressing.
	ModeProgressive
)

func (m Mode) String() string {
	switch m {
	case ModeStatic:
		return "static"
	case ModeContinuous:
		return "continuous"
	case ModeProgressive:
		return "progressive"
	default:
		return "unknown"
	}
}

// Driver tracks the current step of one asset channel under one Mode. The
// Config may be shared with other drivers; the Driver never mutates it.
type Driver struct {
	cfg  *Config
	mode Mode
	step int
}

// NewDriver validates cfg and creates a driver at its starting step:
// staticStep for ModeStatic (ignored otherwise), step 0 for the other modes.
func NewDriver(cfg *Config, mode Mode, staticStep int) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Driver{cfg: cfg, mode: mode}
	if mode == ModeStatic {
		if staticStep < 0 || staticStep >= cfg.Steps() {
			return nil, fmt.Errorf("%w: %d of %d", ErrStaticLevel, staticStep, cfg.Steps())
		}
		d.step = staticStep
	}
	return d, nil
}

// Mode returns the driver's addressing mode.
func (d *Driver) Mode() Mode {
	return d.mode
}

// Step returns the current step index.
func (d *Driver) Step() int {
	return d.step
}

// Level returns the quality level value at the current step.
func (d *Driver) Level() int {
	return d.cfg.Levels[d.step]
}

// AtFinalStep reports whether a progressive driver has finished its walk.
func (d *Driver) AtFinalStep() bool {
	return d.step == d.cfg.Steps()-1
}

// Observe feeds one tick's apparent-size metric to a continuous driver and
// reports whether the step changed. Static and progressive drivers ignore
// the metric.
func (d *Driver) Observe(size float64) bool {
	if d.mode != ModeContinuous {
		return false
	}
	next := d.cfg.Select(size)
	if next == d.step {
		return false
	}
	d.step = next
	return true
}

// Advance moves a progressive driver one step after a completed generation
// cycle. generating reports the externally-observed in-flight flag: while
// it is set no new step is requested. Returns true when the step moved.
func (d *Driver) Advance(generating bool) bool {
	if d.mode != ModeProgressive || generating || d.AtFinalStep() {
		return false
	}
	d.step++
	return true
}
