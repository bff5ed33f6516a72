package core

// Output represents one record emitted by a single code cell execution.
// Concrete output types implement the unexported isOutput marker enabling a
// closed set. Order within a cell's output list reflects emission order:
// stream output always precedes the terminal result or error of that run.
type Output interface{ isOutput() }

// StreamOutput captures text written to a standard stream during execution.
type StreamOutput struct {
	Name string // Stream name, "stdout"
	Text string // Captured stream contents
}

// isOutput implements the Output interface for StreamOutput.
func (StreamOutput) isOutput() {}

// ResultOutput captures the value of a trailing bare expression.
type ResultOutput struct {
	ExecutionCount int    // Execution count of the run that produced the value
	Text           string // Plain text rendering of the value
}

// isOutput implements the Output interface for ResultOutput.
func (ResultOutput) isOutput() {}

// ErrorOutput captures a failed execution as data.
type ErrorOutput struct {
	Name      string   // Error class name, "ExecutionError"
	Message   string   // Short error description
	Traceback []string // Full formatted trace, one line per entry
}

// isOutput implements the Output interface for ErrorOutput.
func (ErrorOutput) isOutput() {}
