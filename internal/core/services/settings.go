package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
	"github.com/custodia-labs/poolcalc/internal/core/ports/driven"
	"github.com/custodia-labs/poolcalc/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyScalingFactor   = "pooling.scaling_factor"
	KeyMinVolume       = "pooling.min_volume_ul"
	KeyMaxVolume       = "pooling.max_volume_ul"
	KeyTotalReads      = "pooling.total_reads_m"
	KeyFinalPoolVolume = "pooling.final_pool_volume_ul"
	KeyThreshold10x    = "dilution.threshold_10x"
	KeyThreshold5x     = "dilution.threshold_5x"
	KeyGroupingColumn  = "hierarchy.grouping_column"
	KeyMaxPerPool      = "hierarchy.max_per_pool"
	KeyMinSubPools     = "hierarchy.min_subpools"
)

var settingKeys = []string{
	KeyScalingFactor,
	KeyMinVolume,
	KeyMaxVolume,
	KeyTotalReads,
	KeyFinalPoolVolume,
	KeyThreshold10x,
	KeyThreshold5x,
	KeyGroupingColumn,
	KeyMaxPerPool,
	KeyMinSubPools,
}

// SettingsService manages calculator defaults stored in the config file.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Missing or invalid values fall back to
// their defaults one key at a time.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Pooling: domain.PoolingParams{
			ScalingFactor: s.getFloat(KeyScalingFactor, defaults.Pooling.ScalingFactor),
			MinVolumeUL:   s.getFloat(KeyMinVolume, defaults.Pooling.MinVolumeUL),
			MaxVolumeUL:   s.getOptionalFloat(KeyMaxVolume),
			TotalReadsM:   s.getOptionalFloat(KeyTotalReads),
			Dilution: domain.DilutionThresholds{
				TenX:  s.getFloat(KeyThreshold10x, defaults.Pooling.Dilution.TenX),
				FiveX: s.getFloat(KeyThreshold5x, defaults.Pooling.Dilution.FiveX),
			},
		},
		Hierarchy: domain.HierarchyConfig{
			GroupingColumn:   s.getGroupingColumn(defaults.Hierarchy.GroupingColumn),
			MaxPerPool:       s.getInt(KeyMaxPerPool, defaults.Hierarchy.MaxPerPool),
			MinSubPools:      s.getInt(KeyMinSubPools, defaults.Hierarchy.MinSubPools),
			CandidateColumns: defaults.Hierarchy.CandidateColumns,
		},
		FinalPoolVolumeUL: s.getFloat(KeyFinalPoolVolume, defaults.FinalPoolVolumeUL),
	}

	return settings, nil
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyScalingFactor, settings.Pooling.ScalingFactor},
		{KeyMinVolume, settings.Pooling.MinVolumeUL},
		{KeyThreshold10x, settings.Pooling.Dilution.TenX},
		{KeyThreshold5x, settings.Pooling.Dilution.FiveX},
		{KeyFinalPoolVolume, settings.FinalPoolVolumeUL},
		{KeyGroupingColumn, settings.Hierarchy.GroupingColumn.String()},
		{KeyMaxPerPool, settings.Hierarchy.MaxPerPool},
		{KeyMinSubPools, settings.Hierarchy.MinSubPools},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if err := s.saveOptional(KeyMaxVolume, settings.Pooling.MaxVolumeUL); err != nil {
		return err
	}
	return s.saveOptional(KeyTotalReads, settings.Pooling.TotalReadsM)
}

// Set parses value for key and saves the updated settings. An empty value
// clears the optional keys.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)

	switch key {
	case KeyScalingFactor:
		err = parseFloatInto(key, value, &settings.Pooling.ScalingFactor)
	case KeyMinVolume:
		err = parseFloatInto(key, value, &settings.Pooling.MinVolumeUL)
	case KeyMaxVolume:
		settings.Pooling.MaxVolumeUL, err = parseOptionalFloat(key, value)
	case KeyTotalReads:
		settings.Pooling.TotalReadsM, err = parseOptionalFloat(key, value)
	case KeyFinalPoolVolume:
		err = parseFloatInto(key, value, &settings.FinalPoolVolumeUL)
	case KeyThreshold10x:
		err = parseFloatInto(key, value, &settings.Pooling.Dilution.TenX)
	case KeyThreshold5x:
		err = parseFloatInto(key, value, &settings.Pooling.Dilution.FiveX)
	case KeyGroupingColumn:
		col := domain.GroupingColumn(value)
		if !col.IsValid() {
			return fmt.Errorf("grouping column %q not found: %w", value, domain.ErrMissingColumn)
		}
		settings.Hierarchy.GroupingColumn = col
	case KeyMaxPerPool:
		err = parseIntInto(key, value, &settings.Hierarchy.MaxPerPool)
	case KeyMinSubPools:
		err = parseIntInto(key, value, &settings.Hierarchy.MinSubPools)
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return err
	}

	return s.Save(settings)
}

// Reset removes every stored setting so defaults apply again.
func (s *SettingsService) Reset() error {
	for _, key := range settingKeys {
		if err := s.configStore.Delete(key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	return nil
}

// Values returns the current value of every key, formatted for display.
func (s *SettingsService) Values() (map[string]string, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	return SettingValues(settings), nil
}

// Keys returns every settable key in display order.
func (s *SettingsService) Keys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// SettingValues flattens settings into key order for display.
func SettingValues(settings *domain.Settings) map[string]string {
	opt := func(v *float64) string {
		if v == nil {
			return ""
		}
		return formatFloat(*v)
	}
	return map[string]string{
		KeyScalingFactor:   formatFloat(settings.Pooling.ScalingFactor),
		KeyMinVolume:       formatFloat(settings.Pooling.MinVolumeUL),
		KeyMaxVolume:       opt(settings.Pooling.MaxVolumeUL),
		KeyTotalReads:      opt(settings.Pooling.TotalReadsM),
		KeyFinalPoolVolume: formatFloat(settings.FinalPoolVolumeUL),
		KeyThreshold10x:    formatFloat(settings.Pooling.Dilution.TenX),
		KeyThreshold5x:     formatFloat(settings.Pooling.Dilution.FiveX),
		KeyGroupingColumn:  settings.Hierarchy.GroupingColumn.String(),
		KeyMaxPerPool:      strconv.Itoa(settings.Hierarchy.MaxPerPool),
		KeyMinSubPools:     strconv.Itoa(settings.Hierarchy.MinSubPools),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloatInto(key, value string, dst *float64) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%s: %q is not a number: %w", key, value, domain.ErrInvalidParameter)
	}
	*dst = v
	return nil
}

func parseOptionalFloat(key, value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	var v float64
	if err := parseFloatInto(key, value, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func parseIntInto(key, value string, dst *int) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %q is not an integer: %w", key, value, domain.ErrInvalidParameter)
	}
	*dst = v
	return nil
}

func (s *SettingsService) saveOptional(key string, v *float64) error {
	if v == nil {
		if err := s.configStore.Delete(key); err != nil {
			return fmt.Errorf("clear %s: %w", key, err)
		}
		return nil
	}
	if err := s.configStore.Set(key, *v); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Helper methods for reading config with defaults.

// numeric reports whether key holds a number; zero is a legal value.
func (s *SettingsService) numeric(key string) bool {
	val, exists := s.configStore.Get(key)
	if !exists {
		return false
	}
	switch val.(type) {
	case float64, int, int64:
		return true
	default:
		return false
	}
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if !s.numeric(key) {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getOptionalFloat(key string) *float64 {
	if !s.numeric(key) {
		return nil
	}
	val := s.configStore.GetFloat(key)
	return &val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getGroupingColumn(defaultVal domain.GroupingColumn) domain.GroupingColumn {
	val := s.configStore.GetString(KeyGroupingColumn)
	if val == "" {
		return defaultVal
	}
	col := domain.GroupingColumn(val)
	if !col.IsValid() {
		return defaultVal
	}
	return col
}
