package soul

import "math"

const (
	ThresholdActive   uint64 = 100
	ThresholdAscended uint64 = 1000

	InitialVersion = 1
)

// Threshold returns the XP required to enter stage s.
func Threshold(s Stage) uint64 {
	switch s {
	case StageActive:
		return ThresholdActive
	case StageAscended:
		return ThresholdAscended
	default:
		return 0
	}
}

func SaturatingAdd64(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func SaturatingAdd32(a, b uint32) uint32 {
	if a > math.MaxUint32-b {
		return math.MaxUint32
	}
	return a + b
}
