package mailbox

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/example/reseller-console/internal/domain/stock"
)

// Message is the normalized shape every source reduces its upstream
// response to. Adapters never filter; classification happens in the
// verification engine.
type Message struct {
	Subject     string `json:"subject"`
	FromAddress string `json:"fromAddress"`
}

// Adapter fetches recent inbox messages for one mailbox. Implementations
// are pure I/O; each call is independent and one adapter's failure must
// not affect sibling calls.
type Adapter interface {
	FetchMessages(ctx context.Context, account stock.MailboxAccount) ([]Message, error)
}

// APIError is a non-success response from an upstream inbox service.
type APIError struct {
	Source  string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s API error: HTTP %d", e.Source, e.Status)
}

func httpStatusError(source string, status int) *APIError {
	return &APIError{Source: source, Status: status}
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}
