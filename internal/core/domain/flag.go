package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// FlagKind identifies an advisory condition on a computed library.
// The numeric order is the order flags are reported in.
type FlagKind int

// Flag kinds, in reporting order.
const (
	// FlagInsufficientVolume means the final volume exceeds what is available.
	FlagInsufficientVolume FlagKind = iota + 1

	// FlagPreDilution means the stock should be diluted before pipetting.
	FlagPreDilution

	// FlagBelowMinimum means the final volume is below the pipettable minimum.
	FlagBelowMinimum

	// FlagAboveMaximum means the final volume exceeds the configured maximum.
	FlagAboveMaximum

	// FlagVolumeOverflow means the stock volume is too large to represent.
	FlagVolumeOverflow
)

// OverflowVolumeUL stands in for a stock or final volume that overflowed.
const OverflowVolumeUL = math.MaxFloat64

// AddVolume sums two volumes, saturating at OverflowVolumeUL.
func AddVolume(total, v float64) float64 {
	if sum := total + v; sum < OverflowVolumeUL {
		return sum
	}
	return OverflowVolumeUL
}

// String returns the machine-readable name of the kind.
func (k FlagKind) String() string {
	switch k {
	case FlagInsufficientVolume:
		return "insufficient_volume"
	case FlagPreDilution:
		return "pre_dilution"
	case FlagBelowMinimum:
		return "below_minimum"
	case FlagAboveMaximum:
		return "above_maximum"
	case FlagVolumeOverflow:
		return "volume_overflow"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k FlagKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *FlagKind) UnmarshalText(text []byte) error {
	for _, kind := range []FlagKind{FlagInsufficientVolume, FlagPreDilution, FlagBelowMinimum, FlagAboveMaximum, FlagVolumeOverflow} {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown flag kind %q: %w", string(text), ErrInvalidInput)
}

// Flag is a typed advisory warning with its numeric payload.
// Value is the measured volume, except for FlagVolumeOverflow where it is
// the effective molarity that caused the overflow. Limit is the threshold
// Value was compared against. Factor is only set for FlagPreDilution.
type Flag struct {
	Kind   FlagKind `json:"kind"`
	Value  float64  `json:"value"`
	Limit  float64  `json:"limit,omitempty"`
	Factor int      `json:"factor,omitempty"`
}

// MarshalJSON adds the rendered message alongside the typed payload.
func (f Flag) MarshalJSON() ([]byte, error) {
	type plain Flag
	return json.Marshal(struct {
		plain
		Message string `json:"message"`
	}{plain(f), f.Message()})
}

// Message renders the flag as operator-facing text.
func (f Flag) Message() string {
	switch f.Kind {
	case FlagInsufficientVolume:
		return fmt.Sprintf("Insufficient volume (need %.3f µl, have %.3f µl)", f.Value, f.Limit)
	case FlagPreDilution:
		return fmt.Sprintf("Pre-dilute %dx recommended (stock volume %.3f µl)", f.Factor, f.Value)
	case FlagBelowMinimum:
		return fmt.Sprintf("Below minimum pipettable volume (%.6f µl < %s µl)", f.Value, formatLimit(f.Limit))
	case FlagAboveMaximum:
		return fmt.Sprintf("Exceeds maximum volume (%.3f µl > %s µl)", f.Value, formatLimit(f.Limit))
	case FlagVolumeOverflow:
		return fmt.Sprintf("Stock volume overflows (effective molarity %g nM)", f.Value)
	default:
		return "Unknown flag"
	}
}

// formatLimit prints a configured threshold exactly as it was given.
func formatLimit(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// JoinFlags renders flags in kind order separated by "; ".
func JoinFlags(flags []Flag) string {
	if len(flags) == 0 {
		return ""
	}
	sorted := make([]Flag, len(flags))
	copy(sorted, flags)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Kind < sorted[j].Kind })

	parts := make([]string, len(sorted))
	for i, f := range sorted {
		parts[i] = f.Message()
	}
	return strings.Join(parts, "; ")
}
