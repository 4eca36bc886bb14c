package mailbox

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/example/reseller-console/internal/domain/stock"
)

// TinyhostAdapter reads an inbox through the tinyhost relay. The relay
// wraps results in {success, emails, error} and is loose about message
// field names, so normalization tries every known alias.
type TinyhostAdapter struct {
	url    string
	client *http.Client
}

func NewTinyhostAdapter(apiURL string, client *http.Client) *TinyhostAdapter {
	if client == nil {
		client = defaultHTTPClient()
	}
	return &TinyhostAdapter{url: apiURL, client: client}
}

type tinyhostResponse struct {
	Success bool                         `json:"success"`
	Error   string                       `json:"error"`
	Emails  []map[string]json.RawMessage `json:"emails"`
}

func (a *TinyhostAdapter) FetchMessages(ctx context.Context, account stock.MailboxAccount) ([]Message, error) {
	payload, err := json.Marshal(map[string]string{"email": account.Email})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body tinyhostResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, httpStatusError("TinyHost", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !body.Success {
		if msg := strings.TrimSpace(body.Error); msg != "" {
			return nil, &APIError{Source: "TinyHost", Status: resp.StatusCode, Message: msg}
		}
		return nil, httpStatusError("TinyHost", resp.StatusCode)
	}

	messages := make([]Message, 0, len(body.Emails))
	for _, raw := range body.Emails {
		messages = append(messages, Message{
			Subject:     firstString(raw, "subject", "title"),
			FromAddress: firstString(raw, "from", "sender", "fromAddress", "from_address"),
		})
	}
	return messages, nil
}

// firstString returns the first non-empty string value among the named
// keys.
func firstString(fields map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var value string
		if err := json.Unmarshal(raw, &value); err == nil && value != "" {
			return value
		}
	}
	return ""
}
