package lod

import "fmt"

// Config is one asset channel's quality ladder: N quality levels ordered
// best-first, and N-1 strictly decreasing apparent-size thresholds. A
// channel whose size metric is at least Thresholds[i] renders at level i;
// below every threshold it renders at the last (lowest) level.
//
// A Config may be shared between channels (the "common" ladder) or owned by
// one channel alone.
type Config struct {
	Levels     []int     `json:"levels" yaml:"levels"`
	Thresholds []float64 `json:"thresholds" yaml:"thresholds"`
}

// Validate checks the level/threshold arrays agree in length and that the
// thresholds strictly decrease.
func (c *Config) Validate() error {
	if len(c.Levels) == 0 {
		return ErrNoLevels
	}
	if len(c.Thresholds) != len(c.Levels)-1 {
		return fmt.Errorf("%w: %d levels, %d thresholds",
			ErrThresholdCount, len(c.Levels), len(c.Thresholds))
	}
	for i := 1; i < len(c.Thresholds); i++ {
		if c.Thresholds[i] >= c.Thresholds[i-1] {
			return fmt.Errorf("%w: thresholds[%d]=%v >= thresholds[%d]=%v",
				ErrThresholdOrder, i, c.Thresholds[i], i-1, c.Thresholds[i-1])
		}
	}
	return nil
}

// Steps returns the number of quality steps.
func (c *Config) Steps() int {
	return len(c.Levels)
}

// Select returns the step index for an apparent-size metric: the first
// threshold the size clears wins, and a size below all of them yields the
// lowest-detail step.
func (c *Config) Select(size float64) int {
	return SelectLevel(size, c.Thresholds)
}

// SelectLevel is Select over a bare threshold array with N-1 entries for N
// levels.
func SelectLevel(size float64, thresholds []float64) int {
	for i, th := range thresholds {
		if size >= th {
			return i
		}
	}
	return len(thresholds)
}

// Resize grows or shrinks the ladder to the given step count. Shrinking
// truncates both arrays. Growing repeats the last quality level and
// extrapolates new thresholds from the last two entries toward zero,
// halving instead whenever plain extrapolation would stop being positive.
func (c *Config) Resize(steps int) error {
	if steps < 1 {
		return fmt.Errorf("%w: %d", ErrBadStepCount, steps)
	}
	c.Levels = ResizeLevels(c.Levels, steps)
	c.Thresholds = ResizeThresholds(c.Thresholds, steps-1)
	return nil
}

// ResizeLevels pads a quality-level array by repeating the last entry, or
// truncates it. An empty input grows with zeros.
func ResizeLevels(levels []int, n int) []int {
	if n <= len(levels) {
		return levels[:n]
	}
	out := make([]int, n)
	copy(out, levels)
	if len(levels) > 0 {
		last := levels[len(levels)-1]
		for i := len(levels); i < n; i++ {
			out[i] = last
		}
	}
	return out
}

// ResizeThresholds pads a strictly decreasing threshold array by linear
// extrapolation from its last two entries toward zero, or truncates it.
// When the extrapolated value would not stay positive the previous value is
// halved instead, so the result is always strictly decreasing and positive.
func ResizeThresholds(thresholds []float64, n int) []float64 {
	if n <= len(thresholds) {
		return thresholds[:n]
	}
	out := make([]float64, n)
	copy(out, thresholds)
	for i := len(thresholds); i < n; i++ {
		var next float64
		switch {
		case i >= 2:
			next = out[i-1] + (out[i-1] - out[i-2])
		case i == 1:
			next = out[0] / 2
		default:
			next = 1
		}
		if next <= 0 || (i >= 1 && next >= out[i-1]) {
			next = out[i-1] / 2
		}
		out[i] = next
	}
	return out
}
