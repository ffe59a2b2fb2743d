package domain

import "fmt"

// Default pooling parameters.
const (
	// DefaultScalingFactor tunes stock volumes; typical range is 0.05 - 0.5.
	DefaultScalingFactor = 0.1

	// DefaultMinVolumeUL is the smallest volume most pipettes deliver accurately.
	DefaultMinVolumeUL = 1.0

	// DefaultFinalPoolVolumeUL is the reported master pool volume target.
	DefaultFinalPoolVolumeUL = 20.0

	// DefaultThreshold10x is the stock volume below which a 10x pre-dilution is advised.
	DefaultThreshold10x = 0.2

	// DefaultThreshold5x is the stock volume below which a 5x pre-dilution is advised.
	DefaultThreshold5x = 0.795
)

// DilutionThresholds are the pipette-specific stock volume cut-offs in µl.
type DilutionThresholds struct {
	TenX  float64 `json:"ten_x"`
	FiveX float64 `json:"five_x"`
}

// DefaultDilutionThresholds returns the standard 0.2 / 0.795 µl thresholds.
func DefaultDilutionThresholds() DilutionThresholds {
	return DilutionThresholds{TenX: DefaultThreshold10x, FiveX: DefaultThreshold5x}
}

// Factor returns the pre-dilution factor for an undiluted stock volume.
func (d DilutionThresholds) Factor(stockVolumeUL float64) int {
	switch {
	case stockVolumeUL < d.TenX:
		return 10
	case stockVolumeUL < d.FiveX:
		return 5
	default:
		return 1
	}
}

// Validate checks the thresholds are positive and ordered.
func (d DilutionThresholds) Validate() error {
	if d.TenX <= 0 || d.FiveX <= 0 {
		return fmt.Errorf("dilution thresholds must be > 0, got 10x=%g 5x=%g: %w", d.TenX, d.FiveX, ErrInvalidParameter)
	}
	if d.TenX > d.FiveX {
		return fmt.Errorf("10x threshold %g must not exceed 5x threshold %g: %w", d.TenX, d.FiveX, ErrInvalidParameter)
	}
	return nil
}

// PoolingParams configures one run of the single-stage volume engine.
type PoolingParams struct {
	// ScalingFactor is the free constant in stock = scaling / nM * reads.
	ScalingFactor float64 `json:"scaling_factor"`

	// MinVolumeUL is the minimum pipettable volume.
	MinVolumeUL float64 `json:"min_volume_ul"`

	// MaxVolumeUL is an optional per-library maximum.
	MaxVolumeUL *float64 `json:"max_volume_ul,omitempty"`

	// TotalReadsM enables expected-read projection when set.
	TotalReadsM *float64 `json:"total_reads_m,omitempty"`

	// Dilution holds the pre-dilution thresholds.
	Dilution DilutionThresholds `json:"dilution"`
}

// DefaultPoolingParams returns the standard parameters.
func DefaultPoolingParams() PoolingParams {
	return PoolingParams{
		ScalingFactor: DefaultScalingFactor,
		MinVolumeUL:   DefaultMinVolumeUL,
		Dilution:      DefaultDilutionThresholds(),
	}
}

// Validate rejects parameters the engine cannot use.
func (p PoolingParams) Validate() error {
	if p.ScalingFactor <= 0 {
		return fmt.Errorf("scaling factor must be > 0, got %g: %w", p.ScalingFactor, ErrInvalidParameter)
	}
	if p.MinVolumeUL < 0 {
		return fmt.Errorf("min volume must be >= 0, got %g µl: %w", p.MinVolumeUL, ErrInvalidParameter)
	}
	if p.MaxVolumeUL != nil && *p.MaxVolumeUL < 0 {
		return fmt.Errorf("max volume must be >= 0, got %g µl: %w", *p.MaxVolumeUL, ErrInvalidParameter)
	}
	if p.TotalReadsM != nil && *p.TotalReadsM <= 0 {
		return fmt.Errorf("total reads must be > 0, got %g M: %w", *p.TotalReadsM, ErrInvalidParameter)
	}
	return p.Dilution.Validate()
}

// WithoutTotalReads returns a copy with expected-read projection disabled.
func (p PoolingParams) WithoutTotalReads() PoolingParams {
	p.TotalReadsM = nil
	return p
}

// Values returns the parameters as a flat map for plan metadata.
func (p PoolingParams) Values() map[string]any {
	m := map[string]any{
		"scaling_factor": p.ScalingFactor,
		"min_volume_ul":  p.MinVolumeUL,
		"max_volume_ul":  nil,
		"total_reads_m":  nil,
		"threshold_10x":  p.Dilution.TenX,
		"threshold_5x":   p.Dilution.FiveX,
	}
	if p.MaxVolumeUL != nil {
		m["max_volume_ul"] = *p.MaxVolumeUL
	}
	if p.TotalReadsM != nil {
		m["total_reads_m"] = *p.TotalReadsM
	}
	return m
}

// Float returns a pointer to v, for optional parameters.
func Float(v float64) *float64 {
	return &v
}
