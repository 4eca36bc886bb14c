package stock

import (
	"regexp"
	"strings"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	embeddedEmail   = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	clientIDPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
)

// refreshTokenMinLength separates refresh tokens from passwords in
// three-segment credential records. Tokens are long opaque blobs;
// passwords almost never are.
const refreshTokenMinLength = 20

// Column is one extracted field of an item's content.
type Column struct {
	Value string
	// Count is the total number of fields in the content line, reported
	// in diagnostics when the requested column is missing.
	Count int
}

// ExtractColumn splits content on commas and returns the 1-based index-th
// field, trimmed. An out-of-range index yields an empty value; the call
// never fails.
func ExtractColumn(content string, index int) Column {
	line := strings.TrimSpace(content)
	if line == "" {
		return Column{}
	}
	fields := strings.Split(line, ",")
	col := Column{Count: len(fields)}
	if index >= 1 && index <= len(fields) {
		col.Value = strings.TrimSpace(fields[index-1])
	}
	return col
}

// IsEmail reports whether value looks like an email address.
func IsEmail(value string) bool {
	return emailPattern.MatchString(strings.TrimSpace(value))
}

// ExtractEmail resolves an email address from free-form text: the text
// itself if valid, otherwise the first embedded email-shaped substring.
// Returns "" when nothing resolves. The result is lowercased.
func ExtractEmail(value string) string {
	text := strings.TrimSpace(value)
	if text == "" {
		return ""
	}
	if IsEmail(text) {
		return strings.ToLower(text)
	}
	if match := embeddedEmail.FindString(text); match != "" {
		return strings.ToLower(match)
	}
	return ""
}

// MailboxAccount is a structured credential record for mailbox sources
// that authenticate: Mail|Password|RefreshToken|ClientID.
type MailboxAccount struct {
	Email        string
	Password     string
	RefreshToken string
	ClientID     string
}

// ParseMailboxAccount parses a pipe-delimited credential record. Records
// with 2, 3, or 4 segments are accepted; the ambiguous 3-segment form is
// disambiguated by field shape: a long opaque second segment plus a
// UUID-shaped third segment means password was omitted. A record without a
// resolvable refresh token is invalid and yields nil.
func ParseMailboxAccount(raw string) *MailboxAccount {
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil
	}

	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 {
		return nil
	}

	email := strings.ToLower(parts[0])
	if !IsEmail(email) {
		return nil
	}

	account := MailboxAccount{Email: email}
	switch {
	case len(parts) >= 4:
		account.Password = parts[1]
		account.RefreshToken = parts[2]
		account.ClientID = parts[3]
	case len(parts) == 3:
		second, third := parts[1], parts[2]
		if len(second) > refreshTokenMinLength && clientIDPattern.MatchString(third) {
			account.RefreshToken = second
			account.ClientID = third
		} else {
			account.Password = second
			account.RefreshToken = third
		}
	default:
		account.RefreshToken = parts[1]
	}

	if account.RefreshToken == "" {
		return nil
	}
	return &account
}
