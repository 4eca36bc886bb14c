package mailbox

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/example/reseller-console/internal/domain/stock"
)

const graphMaxMessages = 20

// GraphAdapter reads a Microsoft-account inbox through a Graph proxy,
// authenticating with the refresh token carried in the stock item's
// credential record.
type GraphAdapter struct {
	url             string
	defaultClientID string
	client          *http.Client
}

func NewGraphAdapter(proxyURL, defaultClientID string, client *http.Client) *GraphAdapter {
	if client == nil {
		client = defaultHTTPClient()
	}
	return &GraphAdapter{
		url:             proxyURL,
		defaultClientID: defaultClientID,
		client:          client,
	}
}

type graphRequest struct {
	Email           string `json:"hotmail_email"`
	RefreshToken    string `json:"refresh_token"`
	ClientID        string `json:"client_id"`
	AuthMode        string `json:"auth_mode"`
	MaxMessages     int    `json:"max_messages"`
	ReturnAllEmails bool   `json:"return_all_emails"`
}

type graphEmail struct {
	Subject      string        `json:"subject"`
	SubjectUpper string        `json:"Subject"`
	From         *graphAddress `json:"from"`
	FromUpper    *graphAddress `json:"From"`
}

type graphAddress struct {
	EmailAddress struct {
		Address string `json:"address"`
	} `json:"emailAddress"`
	EmailAddressUpper struct {
		Address string `json:"Address"`
	} `json:"EmailAddress"`
}

type graphResponse struct {
	Success bool         `json:"success"`
	Error   string       `json:"error"`
	Emails  []graphEmail `json:"emails"`
}

func (a *GraphAdapter) FetchMessages(ctx context.Context, account stock.MailboxAccount) ([]Message, error) {
	clientID := account.ClientID
	if clientID == "" {
		clientID = a.defaultClientID
	}

	payload, err := json.Marshal(graphRequest{
		Email:           account.Email,
		RefreshToken:    account.RefreshToken,
		ClientID:        clientID,
		AuthMode:        "graph",
		MaxMessages:     graphMaxMessages,
		ReturnAllEmails: true,
	})
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

	var body graphResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, httpStatusError("Graph", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !body.Success {
		if msg := strings.TrimSpace(body.Error); msg != "" {
			return nil, &APIError{Source: "Graph", Status: resp.StatusCode, Message: msg}
		}
		return nil, httpStatusError("Graph", resp.StatusCode)
	}

	messages := make([]Message, 0, len(body.Emails))
	for _, email := range body.Emails {
		messages = append(messages, Message{
			Subject:     email.subject(),
			FromAddress: email.fromAddress(),
		})
	}
	return messages, nil
}

func (e graphEmail) subject() string {
	if e.Subject != "" {
		return e.Subject
	}
	return e.SubjectUpper
}

func (e graphEmail) fromAddress() string {
	if e.From != nil {
		if addr := e.From.address(); addr != "" {
			return addr
		}
	}
	if e.FromUpper != nil {
		return e.FromUpper.address()
	}
	return ""
}

func (a *graphAddress) address() string {
	if a.EmailAddress.Address != "" {
		return a.EmailAddress.Address
	}
	return a.EmailAddressUpper.Address
}
