package domain

// Strategy is a recommended pooling workflow.
type Strategy string

// Available strategies.
const (
	// StrategySingleStage pools every library directly into one pool.
	StrategySingleStage Strategy = "single_stage"

	// StrategyHierarchical pools libraries into sub-pools, then sub-pools into a master pool.
	StrategyHierarchical Strategy = "hierarchical"
)

// String returns the string representation.
func (s Strategy) String() string {
	return string(s)
}

// Description returns a human-readable description of the strategy.
func (s Strategy) Description() string {
	switch s {
	case StrategySingleStage:
		return "Single-stage (libraries -> pool)"
	case StrategyHierarchical:
		return "Hierarchical (libraries -> sub-pools -> master pool)"
	default:
		return unknownDescription
	}
}

// StrategyRecommendation is the advisory output of strategy selection.
// Callers are free to ignore it.
type StrategyRecommendation struct {
	Strategy        Strategy                `json:"strategy"`
	GroupingOptions []GroupingColumn        `json:"grouping_options"`
	TotalLibraries  int                     `json:"total_libraries"`
	MaxPerPool      int                     `json:"max_per_pool"`
	GroupCounts     map[GroupingColumn]int  `json:"group_counts,omitempty"`
	Viable          map[GroupingColumn]bool `json:"viable,omitempty"`
	Reason          string                  `json:"reason"`
	Warning         string                  `json:"warning,omitempty"`
}

// NeedsManualGrouping reports a hierarchical recommendation with no natural grouping.
func (r StrategyRecommendation) NeedsManualGrouping() bool {
	return r.Strategy == StrategyHierarchical && len(r.GroupingOptions) == 0
}
