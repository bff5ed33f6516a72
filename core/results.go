package core

// Result records are the structured return values of every notebook
// operation. They replace the loosely typed response dictionaries of
// conventional notebook servers with a closed set of per-operation types
// while keeping the same field names for wire compatibility. Failures are
// encoded in the record itself (success flag false, Code set, Message
// explaining the violation); nothing is ever raised across this boundary.

// CreateCellResult reports cell creation or insertion.
type CreateCellResult struct {
	Created bool      `json:"created"`
	Index   int       `json:"index"` // -1 on failure
	Message string    `json:"message"`
	Code    ErrorCode `json:"error_code,omitempty"`
}

// UpdateCellResult reports an in-place source replacement.
type UpdateCellResult struct {
	Updated  bool      `json:"updated"`
	Message  string    `json:"message"`
	CellType CellType  `json:"cell_type"` // empty on failure
	Code     ErrorCode `json:"error_code,omitempty"`
}

// DeleteCellResult reports a cell removal.
type DeleteCellResult struct {
	Deleted         bool      `json:"deleted"`
	Message         string    `json:"message"`
	NewTotal        int       `json:"new_total"`
	DeletedCellType CellType  `json:"deleted_cell_type"` // empty on failure
	Code            ErrorCode `json:"error_code,omitempty"`
}

// MoveCellResult reports a cell reposition.
type MoveCellResult struct {
	Moved    bool      `json:"moved"`
	Message  string    `json:"message"`
	CellType CellType  `json:"cell_type"` // empty on failure
	Code     ErrorCode `json:"error_code,omitempty"`
}

// ClearHistoryResult reports a full history wipe.
type ClearHistoryResult struct {
	Cleared       bool   `json:"cleared"`
	Message       string `json:"message"`
	PreviousTotal int    `json:"previous_total"`
}

// ExecuteCellResult reports a single code cell run.
type ExecuteCellResult struct {
	Executed       bool      `json:"executed"`
	Stdout         string    `json:"stdout"`
	Result         any       `json:"result"`
	Error          string    `json:"error,omitempty"`
	ExecutionCount int       `json:"execution_count"` // -1 when the run never started
	Message        string    `json:"message"`
	Code           ErrorCode `json:"error_code,omitempty"`
}

// CellExecution is the per-cell entry of an ExecuteAllResult.
type CellExecution struct {
	Index          int    `json:"index"`
	Executed       bool   `json:"executed"`
	Stdout         string `json:"stdout"`
	Result         any    `json:"result"`
	Error          string `json:"error,omitempty"`
	ExecutionCount int    `json:"execution_count"`
}

// ExecuteAllResult reports a whole-document run. Executed is the AND of all
// per-cell outcomes; execution continues past individual failures.
type ExecuteAllResult struct {
	Executed      bool            `json:"executed"`
	TotalCells    int             `json:"total_cells"`
	ExecutedCells int             `json:"executed_cells"`
	Results       []CellExecution `json:"results"`
	Message       string          `json:"message"`
}

// RestartKernelResult reports a kernel restart.
type RestartKernelResult struct {
	Restarted bool   `json:"restarted"`
	Message   string `json:"message"`
}

// HistoryInfo is a read-only summary of the document.
type HistoryInfo struct {
	TotalCells           int        `json:"total_cells"`
	CellTypes            []CellType `json:"cell_types"`
	CodeCells            int        `json:"code_cells"`
	MarkdownCells        int        `json:"markdown_cells"`
	ExecutedCells        int        `json:"executed_cells"`
	GlobalExecutionCount int        `json:"global_execution_count"`
}

// CellContentResult is a read-only view of one cell.
type CellContentResult struct {
	Found          bool      `json:"found"`
	Content        string    `json:"content"` // failure message when not found
	CellType       CellType  `json:"cell_type"`
	ExecutionCount *int      `json:"execution_count,omitempty"` // code cells only
	Outputs        []Output  `json:"outputs,omitempty"`         // code cells only
	Code           ErrorCode `json:"error_code,omitempty"`
}

// ExecutionContextResult is a string-rendered snapshot of user variables.
type ExecutionContextResult struct {
	Success       bool              `json:"success"`
	Variables     map[string]string `json:"variables"`
	VariableCount int               `json:"variable_count"`
	Message       string            `json:"message"`
}

// SaveResult reports a notebook save.
type SaveResult struct {
	Saved    bool      `json:"saved"`
	Filepath string    `json:"filepath"`
	Message  string    `json:"message"`
	Code     ErrorCode `json:"error_code,omitempty"`
}

// LoadResult reports a notebook load.
type LoadResult struct {
	Loaded      bool      `json:"loaded"`
	CellsLoaded int       `json:"cells_loaded"`
	Message     string    `json:"message"`
	Code        ErrorCode `json:"error_code,omitempty"`
}

// ExportResult reports an export to an auxiliary format.
type ExportResult struct {
	Exported bool      `json:"exported"`
	Filepath string    `json:"filepath"`
	Message  string    `json:"message"`
	Code     ErrorCode `json:"error_code,omitempty"`
}

// ListNotebooksResult reports the stored notebook names.
type ListNotebooksResult struct {
	Success   bool     `json:"success"`
	Notebooks []string `json:"notebooks"`
	Count     int      `json:"count"`
	Message   string   `json:"message"`
}

// DeleteNotebookResult reports a stored notebook removal.
type DeleteNotebookResult struct {
	Deleted bool      `json:"deleted"`
	Message string    `json:"message"`
	Code    ErrorCode `json:"error_code,omitempty"`
}
