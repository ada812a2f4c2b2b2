package router

// Default rule data.
var (
	DefaultStrategyKeywords = []string{
		"plan",
		"strategy",
		"analyze",
		"build architecture",
		"design",
		"roadmap",
		"approach",
	}
	DefaultInterrogativeMarkers = []string{"what", "how"}
)

const DefaultShortInputThreshold = 50
