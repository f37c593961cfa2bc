package ports

import "context"

// SessionRecord is the non-secret part of a session. The cookie lives in the SecretStore.
type SessionRecord struct {
	Account   string
	League    string
	TabIndex  int
	CookieRef string
}

type SessionRepository interface {
	Get(ctx context.Context) (SessionRecord, error)
	Save(ctx context.Context, record SessionRecord) error
}
