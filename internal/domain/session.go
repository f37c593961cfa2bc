package domain

import (
	"fmt"
	"strings"
)

// Session identifies the stash tab to inventory and the credentials used to read it.
type Session struct {
	Account  string
	Cookie   string
	League   string
	TabIndex int
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.Account) == "" {
		return fmt.Errorf("%w: account is required", ErrSessionIncomplete)
	}
	if strings.TrimSpace(s.League) == "" {
		return fmt.Errorf("%w: league is required", ErrSessionIncomplete)
	}
	if strings.TrimSpace(s.Cookie) == "" {
		return fmt.Errorf("%w: cookie is required", ErrSessionIncomplete)
	}
	if s.TabIndex < 0 {
		return fmt.Errorf("%w: tab index must not be negative", ErrSessionIncomplete)
	}

	return nil
}

// CookieRef is the secret-store key holding the session cookie for an account.
func CookieRef(account string) string {
	return fmt.Sprintf("crh/sessions/%s/cookie", strings.TrimSpace(account))
}

// MaskedCookie keeps the last four characters visible.
func (s Session) MaskedCookie() string {
	if len(s.Cookie) <= 4 {
		return strings.Repeat("*", len(s.Cookie))
	}
	return strings.Repeat("*", len(s.Cookie)-4) + s.Cookie[len(s.Cookie)-4:]
}
