package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================
// ExtractColumn Tests
// ============================================

func TestExtractColumn_Basic(t *testing.T) {
	col := ExtractColumn("a,b,c", 1)
	assert.Equal(t, "a", col.Value)
	assert.Equal(t, 3, col.Count)

	col = ExtractColumn("a,b,c", 3)
	assert.Equal(t, "c", col.Value)
}

func TestExtractColumn_OutOfRange(t *testing.T) {
	col := ExtractColumn("a,b,c", 5)
	assert.Equal(t, "", col.Value)
	assert.Equal(t, 3, col.Count)
}

func TestExtractColumn_TrimsFields(t *testing.T) {
	col := ExtractColumn("  user@mail.com , secret ,  token", 2)
	assert.Equal(t, "secret", col.Value)
	assert.Equal(t, 3, col.Count)
}

func TestExtractColumn_EmptyContent(t *testing.T) {
	col := ExtractColumn("   ", 1)
	assert.Equal(t, "", col.Value)
	assert.Equal(t, 0, col.Count)
}

func TestExtractColumn_ZeroIndex(t *testing.T) {
	col := ExtractColumn("a,b", 0)
	assert.Equal(t, "", col.Value)
	assert.Equal(t, 2, col.Count)
}

// ============================================
// ExtractEmail Tests
// ============================================

func TestExtractEmail_Direct(t *testing.T) {
	assert.Equal(t, "user@example.com", ExtractEmail("User@Example.com"))
}

func TestExtractEmail_Embedded(t *testing.T) {
	assert.Equal(t, "buyer@mail.net", ExtractEmail("account buyer@mail.net (fresh)"))
}

func TestExtractEmail_Unresolvable(t *testing.T) {
	assert.Equal(t, "", ExtractEmail("not an address"))
	assert.Equal(t, "", ExtractEmail(""))
}

// ============================================
// ParseMailboxAccount Tests
// ============================================

func TestParseMailboxAccount_FourSegments(t *testing.T) {
	account := ParseMailboxAccount("User@Hot.com|pass123|M.C519_BAY.0.U.-CtokenXYZ|d3590ed6-52b3-4102-aeff-aad2292ab01c")

	assert.NotNil(t, account)
	assert.Equal(t, "user@hot.com", account.Email)
	assert.Equal(t, "pass123", account.Password)
	assert.Equal(t, "M.C519_BAY.0.U.-CtokenXYZ", account.RefreshToken)
	assert.Equal(t, "d3590ed6-52b3-4102-aeff-aad2292ab01c", account.ClientID)
}

func TestParseMailboxAccount_TwoSegments(t *testing.T) {
	account := ParseMailboxAccount("user@hot.com|sometoken")

	assert.NotNil(t, account)
	assert.Equal(t, "sometoken", account.RefreshToken)
	assert.Empty(t, account.Password)
	assert.Empty(t, account.ClientID)
}

func TestParseMailboxAccount_ThreeSegments_Heuristic(t *testing.T) {
	// The three-segment form is ambiguous: it can be
	// email|password|token or email|token|clientId. Shape decides.
	tests := []struct {
		name         string
		line         string
		password     string
		refreshToken string
		clientID     string
	}{
		{
			name:         "long token plus uuid means password omitted",
			line:         "a@b.com|0.AAAAAAAAAAAAAAAAAAAAAAAAAAAAAA|d3590ed6-52b3-4102-aeff-aad2292ab01c",
			refreshToken: "0.AAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
			clientID:     "d3590ed6-52b3-4102-aeff-aad2292ab01c",
		},
		{
			name:         "short second segment is a password",
			line:         "a@b.com|hunter2|0.AAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
			password:     "hunter2",
			refreshToken: "0.AAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
		},
		{
			name:         "long second segment without uuid third is a password",
			line:         "a@b.com|averylongpasswordover20chars|tok",
			password:     "averylongpasswordover20chars",
			refreshToken: "tok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := ParseMailboxAccount(tt.line)
			assert.NotNil(t, account)
			assert.Equal(t, tt.password, account.Password)
			assert.Equal(t, tt.refreshToken, account.RefreshToken)
			assert.Equal(t, tt.clientID, account.ClientID)
		})
	}
}

func TestParseMailboxAccount_Invalid(t *testing.T) {
	assert.Nil(t, ParseMailboxAccount(""))
	assert.Nil(t, ParseMailboxAccount("justoneword"))
	assert.Nil(t, ParseMailboxAccount("notanemail|token"))
	// Refresh token missing after parsing.
	assert.Nil(t, ParseMailboxAccount("a@b.com|"))
}

func TestParseMailboxAccount_TrimsSegments(t *testing.T) {
	account := ParseMailboxAccount(" a@b.com | pw | longrefreshtokenvalue123 | d3590ed6-52b3-4102-aeff-aad2292ab01c ")

	assert.NotNil(t, account)
	assert.Equal(t, "a@b.com", account.Email)
	assert.Equal(t, "pw", account.Password)
}
