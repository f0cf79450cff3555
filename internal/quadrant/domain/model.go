package domain

// Tool names the independent scoring tools feeding the quadrant.
type Tool string

const (
	ToolAssessment Tool = "assessment"
	ToolCalls      Tool = "call_analysis"
	ToolBriefs     Tool = "discovery_brief"
	ToolVisibility Tool = "visibility_analysis"
)

// Tools is the fixed participating set, in display order.
var Tools = []Tool{ToolAssessment, ToolCalls, ToolBriefs, ToolVisibility}

// The four archetypes of the execution/positioning quadrant.
const (
	ArchetypeMachine   = "The Machine"
	ArchetypeHiddenGem = "The Hidden Gem"
	ArchetypeMegaphone = "The Megaphone"
	ArchetypeSleeper   = "The Sleeper"
)

// Placement is the computed quadrant position. Axis scores are nil when both
// of an axis's sources are absent; the archetype is nil unless both axes
// have data. Derived on demand, never a source of truth.
type Placement struct {
	ExecutionScore   *float64      `json:"execution_score"`
	PositioningScore *float64      `json:"positioning_score"`
	Archetype        *string       `json:"archetype"`
	Completeness     map[Tool]bool `json:"completeness"`
	CompletedCount   int           `json:"completed_count"`
	TotalTools       int           `json:"total_tools"`
}

// CallSnapshot is the latest call-analysis record's score material: the call
// score on its native 0-10 scale plus the 0-100 conversion-rate companion.
type CallSnapshot struct {
	Score          float64  `json:"score"`
	ConversionRate *float64 `json:"conversion_rate,omitempty"`
}

// BriefStats summarizes a subject's discovery briefs for the depth heuristic.
type BriefStats struct {
	Count           int  `json:"count"`
	HasDeep         bool `json:"has_deep"`
	RichestSections int  `json:"richest_sections"`
	TotalSections   int  `json:"total_sections"`
}
