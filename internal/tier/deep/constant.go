package deep

const (
	StageClassify  = "classify"
	StageKnowledge = "knowledge"
	StageGrounding = "grounding"
	StageGenerate  = "generate"
	StageVerify    = "verify"

	// TemplateContent is the plan produced when no slow model is wired.
	TemplateContent = "[DEEP] Analyzing strategy for: %s"

	// VerifyNote is appended to content that trips a forbidden term.
	VerifyNote = "NOTE: verify this plan against %s before acting on it."

	DefaultTemplateModel = "template"

	LogPrefixExecute = "internal.tier.deep.Execute"
)
