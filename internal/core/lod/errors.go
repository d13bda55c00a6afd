package lod

import "errors"

var (
	ErrNoLevels       = errors.New("lod config has no quality levels")
	ErrThresholdCount = errors.New("threshold count must be one less than level count")
	ErrThresholdOrder = errors.New("thresholds must be strictly decreasing")
	ErrBadStepCount   = errors.New("step count must be at least one")
	ErrStaticLevel    = errors.New("static level out of range")
)
