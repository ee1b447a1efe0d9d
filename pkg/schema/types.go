package schema

// Source identifies which path produced an artifact.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Kind names a generation operation and the history records it produces.
type Kind string

const (
	KindAlgorithm Kind = "algorithm"
	KindFlowchart Kind = "flowchart"
	KindCode      Kind = "code"
)

// DefaultLanguage is used when a code request names no target notation.
const DefaultLanguage = "python"

// AlgorithmRequest asks for numbered algorithm text for a coding question.
type AlgorithmRequest struct {
	CodingQuestion string `json:"coding_question"`
}

// AlgorithmResult carries generated algorithm text.
type AlgorithmResult struct {
	Algorithm string `json:"algorithm"`
}

// FlowchartRequest asks for a flowchart of algorithm text.
type FlowchartRequest struct {
	Algorithm string `json:"algorithm"`
}

// FlowchartResult carries diagram text and the path that produced it.
type FlowchartResult struct {
	Flowchart string `json:"flowchart"`
	Source    Source `json:"source"`
	// Degraded is set when the fallback could not build the full diagram
	// and returned the minimal one.
	Degraded bool `json:"degraded,omitempty"`
}

// CodeRequest asks for source code implementing algorithm text.
type CodeRequest struct {
	Algorithm string `json:"algorithm"`
	Language  string `json:"language,omitempty"`
}

// CodeResult carries cleaned code.
type CodeResult struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	Degraded bool   `json:"degraded,omitempty"`
}

// RenderRequest asks for an offline rendering of the heuristic flow graph.
type RenderRequest struct {
	Algorithm string `json:"algorithm"`
	Format    string `json:"format,omitempty"` // mermaid | ascii | png | svg (default: mermaid)
}

// CleanRequest asks for raw code text to be normalized without generation.
type CleanRequest struct {
	Code     string `json:"code"`
	Language string `json:"language,omitempty"`
}

// ValidateDiagramRequest carries externally supplied diagram text.
type ValidateDiagramRequest struct {
	Diagram string `json:"diagram"`
}

// ValidateDiagramResult reports whether diagram text passed the syntactic check.
type ValidateDiagramResult struct {
	Valid   bool   `json:"valid"`
	Diagram string `json:"diagram"`
	Error   string `json:"error,omitempty"`
}

// Health describes the readiness of the generative collaborator.
type Health struct {
	Status           string `json:"status"`
	APIKeyPresent    bool   `json:"api_key_present"`
	ModelInitialized bool   `json:"model_initialized"`
	Model            string `json:"model,omitempty"`
	HistoryEnabled   bool   `json:"history_enabled"`
	Circuit          string `json:"circuit,omitempty"`
	CircuitFailures  int    `json:"circuit_failures,omitempty"`
	CircuitRetryIn   string `json:"circuit_retry_in,omitempty"`
}

// RetryPolicy configures retries of the external generative call.
type RetryPolicy struct {
	Max      int    `json:"max"`                 // max retry attempts
	Backoff  string `json:"backoff,omitempty"`   // none | constant | linear | exponential (default: none)
	Delay    string `json:"delay,omitempty"`     // initial delay (e.g. "1s", "500ms")
	MaxDelay string `json:"max_delay,omitempty"` // cap on computed delay
}
