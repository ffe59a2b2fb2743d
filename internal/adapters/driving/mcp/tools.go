package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

// MolarityInput is the input schema for the calculate_molarity tool.
type MolarityInput struct {
	ConcentrationNgUL float64 `json:"concentration_ng_ul" jsonschema:"mass concentration in ng/ul"`
	FragmentSizeBP    float64 `json:"fragment_size_bp" jsonschema:"fragment size in base pairs"`
}

// MolarityOutput is the output schema for the calculate_molarity tool.
type MolarityOutput struct {
	MolarityNM float64 `json:"molarity_nm"`
}

// ComputePoolInput is the input schema for the compute_pool tool.
type ComputePoolInput struct {
	Libraries  []LibraryInput `json:"libraries" jsonschema:"libraries to pool"`
	Parameters ParamsInput    `json:"parameters,omitempty" jsonschema:"overrides for configured pooling parameters"`
}

// ComputePoolOutput is the output schema for the compute_pool tool.
type ComputePoolOutput struct {
	PlanID           string                  `json:"plan_id"`
	Libraries        []LibraryOutput         `json:"libraries"`
	Projects         []domain.ProjectSummary `json:"projects"`
	TotalFinalUL     float64                 `json:"total_final_ul"`
	FlaggedCount     int                     `json:"flagged_count"`
	PreDilutionCount int                     `json:"pre_dilution_count"`
}

// StrategyInput is the input schema for the recommend_strategy tool.
type StrategyInput struct {
	Libraries  []LibraryInput `json:"libraries" jsonschema:"libraries to pool"`
	MaxPerPool int            `json:"max_per_pool,omitempty" jsonschema:"maximum libraries per pool (default from settings)"`
}

// StrategyOutput is the output schema for the recommend_strategy tool.
type StrategyOutput struct {
	Strategy        string         `json:"strategy"`
	Description     string         `json:"description"`
	TotalLibraries  int            `json:"total_libraries"`
	MaxPerPool      int            `json:"max_per_pool"`
	GroupingOptions []string       `json:"grouping_options"`
	GroupCounts     map[string]int `json:"group_counts,omitempty"`
	Reason          string         `json:"reason"`
	Warning         string         `json:"warning,omitempty"`
}

// HierarchicalInput is the input schema for the compute_hierarchical tool.
type HierarchicalInput struct {
	Libraries         []LibraryInput `json:"libraries" jsonschema:"libraries to pool"`
	Parameters        ParamsInput    `json:"parameters,omitempty" jsonschema:"overrides for configured pooling parameters"`
	GroupingColumn    string         `json:"grouping_column,omitempty" jsonschema:"project_id, barcode or library_name"`
	MaxPerPool        int            `json:"max_per_pool,omitempty" jsonschema:"maximum libraries per sub-pool"`
	FinalPoolVolumeUL *float64       `json:"final_pool_volume_ul,omitempty" jsonschema:"master pool volume target in ul"`
}

// StageOutput is one stage of a hierarchical plan.
type StageOutput struct {
	Number         int             `json:"number"`
	Stage          string          `json:"stage"`
	Description    string          `json:"description"`
	InputCount     int             `json:"input_count"`
	OutputCount    int             `json:"output_count"`
	PipettingSteps int             `json:"pipetting_steps"`
	Volumes        []LibraryOutput `json:"volumes"`
	Warnings       []string        `json:"warnings,omitempty"`
}

// HierarchicalOutput is the output schema for the compute_hierarchical tool.
type HierarchicalOutput struct {
	PlanID              string           `json:"plan_id"`
	GroupingColumn      string           `json:"grouping_column"`
	FinalPoolVolumeUL   float64          `json:"final_pool_volume_ul"`
	TotalPipettingSteps int              `json:"total_pipetting_steps"`
	SubPools            []domain.SubPool `json:"subpools"`
	Stages              []StageOutput    `json:"stages"`
}

// PrePoolInput defines one user-chosen group.
type PrePoolInput struct {
	Name      string   `json:"name" jsonschema:"pre-pool display name"`
	Libraries []string `json:"libraries" jsonschema:"names of member libraries"`
}

// PrePoolsInput is the input schema for the compute_prepools tool.
type PrePoolsInput struct {
	Libraries  []LibraryInput `json:"libraries" jsonschema:"libraries to pool"`
	PrePools   []PrePoolInput `json:"prepools" jsonschema:"groups to pool before the final pool"`
	Parameters ParamsInput    `json:"parameters,omitempty" jsonschema:"overrides for configured pooling parameters"`
}

// PrePoolOutput is one pooled group.
type PrePoolOutput struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CalculatedNM  float64         `json:"calculated_nm"`
	TotalVolumeUL float64         `json:"total_volume_ul"`
	TargetReadsM  float64         `json:"target_reads_m"`
	Volumes       []LibraryOutput `json:"volumes"`
}

// PrePoolsOutput is the output schema for the compute_prepools tool.
type PrePoolsOutput struct {
	PlanID              string          `json:"plan_id"`
	PrePools            []PrePoolOutput `json:"prepools"`
	FinalPool           []LibraryOutput `json:"final_pool"`
	LibrariesInPrePools int             `json:"libraries_in_prepools"`
	StandaloneLibraries int             `json:"standalone_libraries"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "calculate_molarity",
		Description: "Convert a library concentration (ng/ul) and fragment size (bp) to molarity (nM)",
	}, s.handleMolarity)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compute_pool",
		Description: "Compute single-stage pipetting volumes for a set of libraries",
	}, s.handleComputePool)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recommend_strategy",
		Description: "Recommend single-stage or hierarchical pooling for a set of libraries",
	}, s.handleRecommendStrategy)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compute_hierarchical",
		Description: "Compute a two-stage plan: libraries into sub-pools, sub-pools into a master pool",
	}, s.handleComputeHierarchical)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compute_prepools",
		Description: "Pool user-defined groups first, then combine them with the remaining libraries",
	}, s.handleComputePrePools)
}

// handleMolarity handles the calculate_molarity tool invocation.
func (s *Server) handleMolarity(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input MolarityInput,
) (*mcp.CallToolResult, MolarityOutput, error) {
	nm, err := s.ports.Pooling.Molarity(input.ConcentrationNgUL, input.FragmentSizeBP)
	if err != nil {
		return nil, MolarityOutput{}, err
	}
	return nil, MolarityOutput{MolarityNM: nm}, nil
}

// handleComputePool handles the compute_pool tool invocation.
func (s *Server) handleComputePool(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ComputePoolInput,
) (*mcp.CallToolResult, ComputePoolOutput, error) {
	settings, err := s.ports.settings()
	if err != nil {
		return nil, ComputePoolOutput{}, fmt.Errorf("loading settings: %w", err)
	}

	plan, err := s.ports.Pooling.Compute(libraries(input.Libraries), input.Parameters.apply(settings.Pooling))
	if err != nil {
		return nil, ComputePoolOutput{}, err
	}

	return nil, ComputePoolOutput{
		PlanID:           plan.ID,
		Libraries:        libraryOutputs(plan.Libraries),
		Projects:         plan.Projects,
		TotalFinalUL:     plan.Summary.TotalFinalUL,
		FlaggedCount:     plan.Summary.FlaggedCount,
		PreDilutionCount: plan.Summary.PreDilutionCount,
	}, nil
}

// handleRecommendStrategy handles the recommend_strategy tool invocation.
func (s *Server) handleRecommendStrategy(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input StrategyInput,
) (*mcp.CallToolResult, StrategyOutput, error) {
	settings, err := s.ports.settings()
	if err != nil {
		return nil, StrategyOutput{}, fmt.Errorf("loading settings: %w", err)
	}
	cfg := settings.Hierarchy
	if input.MaxPerPool > 0 {
		cfg.MaxPerPool = input.MaxPerPool
	}

	rec := s.ports.Pooling.RecommendStrategy(libraries(input.Libraries), cfg)

	output := StrategyOutput{
		Strategy:        rec.Strategy.String(),
		Description:     rec.Strategy.Description(),
		TotalLibraries:  rec.TotalLibraries,
		MaxPerPool:      rec.MaxPerPool,
		GroupingOptions: make([]string, len(rec.GroupingOptions)),
		Reason:          rec.Reason,
		Warning:         rec.Warning,
	}
	for i, col := range rec.GroupingOptions {
		output.GroupingOptions[i] = col.String()
	}
	if len(rec.GroupCounts) > 0 {
		output.GroupCounts = make(map[string]int, len(rec.GroupCounts))
		for col, n := range rec.GroupCounts {
			output.GroupCounts[col.String()] = n
		}
	}
	return nil, output, nil
}

// handleComputeHierarchical handles the compute_hierarchical tool invocation.
func (s *Server) handleComputeHierarchical(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input HierarchicalInput,
) (*mcp.CallToolResult, HierarchicalOutput, error) {
	settings, err := s.ports.settings()
	if err != nil {
		return nil, HierarchicalOutput{}, fmt.Errorf("loading settings: %w", err)
	}
	settings.Pooling = input.Parameters.apply(settings.Pooling)
	if input.GroupingColumn != "" {
		settings.Hierarchy.GroupingColumn = domain.GroupingColumn(input.GroupingColumn)
	}
	if input.MaxPerPool > 0 {
		settings.Hierarchy.MaxPerPool = input.MaxPerPool
	}
	if input.FinalPoolVolumeUL != nil {
		settings.FinalPoolVolumeUL = *input.FinalPoolVolumeUL
	}

	plan, err := s.ports.Pooling.ComputeHierarchical(libraries(input.Libraries), settings)
	if err != nil {
		return nil, HierarchicalOutput{}, err
	}

	output := HierarchicalOutput{
		PlanID:              plan.ID,
		GroupingColumn:      plan.GroupingColumn.String(),
		FinalPoolVolumeUL:   plan.FinalPoolVolumeUL,
		TotalPipettingSteps: plan.TotalPipettingSteps,
		SubPools:            plan.SubPools,
		Stages:              make([]StageOutput, len(plan.Stages)),
	}
	for i := range plan.Stages {
		st := &plan.Stages[i]
		output.Stages[i] = StageOutput{
			Number:         st.Number,
			Stage:          st.Stage.String(),
			Description:    st.Description,
			InputCount:     st.InputCount,
			OutputCount:    st.OutputCount,
			PipettingSteps: st.PipettingSteps,
			Volumes:        libraryOutputs(st.Volumes),
			Warnings:       st.Warnings,
		}
	}
	return nil, output, nil
}

// handleComputePrePools handles the compute_prepools tool invocation.
func (s *Server) handleComputePrePools(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input PrePoolsInput,
) (*mcp.CallToolResult, PrePoolsOutput, error) {
	settings, err := s.ports.settings()
	if err != nil {
		return nil, PrePoolsOutput{}, fmt.Errorf("loading settings: %w", err)
	}

	defs := make([]domain.PrePoolDefinition, len(input.PrePools))
	for i, pp := range input.PrePools {
		def, err := domain.NewPrePoolDefinition(pp.Name, pp.Libraries)
		if err != nil {
			return nil, PrePoolsOutput{}, fmt.Errorf("pre-pool %d: %w", i+1, err)
		}
		defs[i] = def
	}

	plan, err := s.ports.Pooling.ComputeWithPrePools(libraries(input.Libraries), defs, input.Parameters.apply(settings.Pooling))
	if err != nil {
		return nil, PrePoolsOutput{}, err
	}

	output := PrePoolsOutput{
		PlanID:              plan.ID,
		PrePools:            make([]PrePoolOutput, len(plan.PrePools)),
		FinalPool:           libraryOutputs(plan.FinalPool),
		LibrariesInPrePools: plan.LibrariesInPrePools,
		StandaloneLibraries: plan.StandaloneLibraries,
	}
	for i := range plan.PrePools {
		pp := &plan.PrePools[i]
		output.PrePools[i] = PrePoolOutput{
			ID:            pp.Definition.ID,
			Name:          pp.Definition.Name,
			CalculatedNM:  pp.CalculatedNM,
			TotalVolumeUL: pp.TotalVolumeUL,
			TargetReadsM:  pp.TargetReadsM,
			Volumes:       libraryOutputs(pp.Members),
		}
	}
	return nil, output, nil
}
