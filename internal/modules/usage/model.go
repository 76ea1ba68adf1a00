// README: Monthly LLM request allowance per caller.
package usage

import "errors"

// ErrInsufficientTokens is returned when a caller has no requests left for the current month.
var ErrInsufficientTokens = errors.New("insufficient tokens")

// DefaultTokens is the number of LLM requests granted per month.
const DefaultTokens = 100

// Row mirrors one ai_usage record.
type Row struct {
	UID             string
	TokensRemaining int
	LastResetMonth  string
}
