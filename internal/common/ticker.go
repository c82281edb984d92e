// Package common provides shared utilities across the application.
package common

import (
	"fmt"
	"strings"
)

// NormalizeTicker canonicalizes a user-supplied ticker symbol: trims
// whitespace and uppercases. Returns an error for an empty symbol or one
// containing characters the upstream sources reject.
func NormalizeTicker(ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return "", fmt.Errorf("ticker symbol is empty")
	}
	for _, r := range ticker {
		valid := (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-'
		if !valid {
			return "", fmt.Errorf("ticker symbol %q contains invalid character %q", ticker, r)
		}
	}
	return ticker, nil
}
