package stockcheck

import "fmt"

// Source selects which mailbox integration a check run uses.
type Source string

const (
	SourceTempMail Source = "tempmail"
	SourceTinyhost Source = "tinyhost"
	SourceGraph    Source = "graph"
)

// Scope selects which stock items a check run applies to.
type Scope string

const (
	// ScopeProduct checks every item of one product.
	ScopeProduct Scope = "product"
	// ScopeSelected checks an explicit id list.
	ScopeSelected Scope = "selected"
)

// Statuses of a per-item check result.
const (
	StatusTrue  = "true"
	StatusFalse = "false"
	StatusError = "error"
)

// Request describes one verification run. It is pure input and never
// persisted.
type Request struct {
	Scope            Scope   `json:"scope"`
	Source           Source  `json:"source"`
	SenderFilter     string  `json:"senderFilter"`
	SubjectFilter    string  `json:"subjectFilter"`
	MailColumnIndex  int     `json:"mailColumnIndex"`
	Concurrency      int     `json:"concurrency"`
	ProductID        int64   `json:"productId"`
	SelectedStockIDs []int64 `json:"selectedStockIds"`
}

// Result classifies one stock item after a run.
type Result struct {
	StockID    int64  `json:"stock_id"`
	Identifier string `json:"identifier"`
	Content    string `json:"content"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

// Summary aggregates a full run. Total always equals the size of the
// checked population; no item is dropped.
type Summary struct {
	Total      int      `json:"total"`
	TrueCount  int      `json:"true_count"`
	FalseCount int      `json:"false_count"`
	ErrorCount int      `json:"error_count"`
	Results    []Result `json:"results"`
}

// ValidationError rejects a malformed request before any work is done.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
