package domain

import (
	"fmt"
	"sort"
	"time"
)

// DefaultExportPrefix is the file name prefix for exported plans.
const DefaultExportPrefix = "pooling_plan"

// MetadataTableName names the table describing how a plan was produced.
const MetadataTableName = "Metadata"

// ExportName returns {prefix}_YYYYMMDD_HHMMSS. An empty prefix uses
// DefaultExportPrefix.
func ExportName(prefix string, at time.Time) string {
	if prefix == "" {
		prefix = DefaultExportPrefix
	}
	return fmt.Sprintf("%s_%s", prefix, at.Format("20060102_150405"))
}

// Workflow labels recorded in plan metadata.
const (
	WorkflowSingleStage  = string(StrategySingleStage)
	WorkflowHierarchical = string(StrategyHierarchical)
	WorkflowPrePooling   = "pre_pooling"
)

// PlanMetadata describes how a plan was produced.
type PlanMetadata struct {
	PlanID      string
	Workflow    string
	GeneratedAt time.Time
	AppName     string
	Version     string
	Parameters  map[string]any
}

// Table renders the metadata as a Parameter/Value table. Parameters are
// listed in key order; unset ones read "None".
func (m PlanMetadata) Table() Table {
	row := func(k string, v any) Row {
		return Row{{"Parameter", k}, {"Value", v}}
	}
	rows := []Row{
		row("Generated At", m.GeneratedAt),
		row("App Name", m.AppName),
		row("App Version", m.Version),
		row("Plan ID", m.PlanID),
		row("Workflow", m.Workflow),
	}

	keys := make([]string, 0, len(m.Parameters))
	for k := range m.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := m.Parameters[k]
		if v == nil {
			v = "None"
		}
		rows = append(rows, row(k, v))
	}
	return Table{Name: MetadataTableName, Rows: rows}
}
