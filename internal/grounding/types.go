package grounding

// Principle is one rule of a constitution. A principle without keywords
// applies to every directive.
type Principle struct {
	ID        string   `yaml:"id"`
	Text      string   `yaml:"text"`
	Keywords  []string `yaml:"keywords"`
	Forbidden []string `yaml:"forbidden"`
}

// Constitution is the reference document deep-tier plans are grounded
// against.
type Constitution struct {
	Name       string      `yaml:"name"`
	Principles []Principle `yaml:"principles"`
}

// Report lists the principles that apply to a directive.
type Report struct {
	Constitution string
	Principles   []Principle
}

// Discrepancy is a forbidden term found in generated content.
type Discrepancy struct {
	PrincipleID string
	Term        string
}
