package mailbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/example/reseller-console/internal/domain/stock"
)

// TempMailAdapter reads a throwaway inbox by address. The upstream
// responds with a bare JSON array of messages.
type TempMailAdapter struct {
	baseURL string
	client  *http.Client
}

// NewTempMailAdapter creates a TempMailAdapter. A nil client gets a
// default with a timeout.
func NewTempMailAdapter(baseURL string, client *http.Client) *TempMailAdapter {
	if client == nil {
		client = defaultHTTPClient()
	}
	return &TempMailAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (a *TempMailAdapter) FetchMessages(ctx context.Context, account stock.MailboxAccount) ([]Message, error) {
	endpoint := fmt.Sprintf("%s/email/%s", a.baseURL, url.PathEscape(account.Email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpStatusError("TempMail", resp.StatusCode)
	}

	// The API returns a plain array; anything else counts as no mail.
	var messages []Message
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		return []Message{}, nil
	}
	return messages, nil
}
