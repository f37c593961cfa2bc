package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/chaos-recipe-cli/internal/domain"
	"github.com/bnema/chaos-recipe-cli/internal/ports"
)

type SessionService struct {
	repo  ports.SessionRepository
	store ports.SecretStore
	state *SessionState
}

func NewSessionService(repo ports.SessionRepository, store ports.SecretStore, state *SessionState) *SessionService {
	if state == nil {
		state = NewSessionState(domain.Session{})
	}

	return &SessionService{
		repo:  repo,
		store: store,
		state: state,
	}
}

func (s *SessionService) State() *SessionState {
	return s.state
}

// Save persists the session, keeping the cookie in the secret store, and publishes it to the
// shared SessionState once it is durable.
func (s *SessionService) Save(ctx context.Context, session domain.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	previous, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("get session record: %w", err)
		}
		previous = ports.SessionRecord{}
	}

	cookieRef := domain.CookieRef(session.Account)
	if err := s.store.Put(ctx, cookieRef, session.Cookie); err != nil {
		return fmt.Errorf("store session cookie: %w", err)
	}

	record := ports.SessionRecord{
		Account:   session.Account,
		League:    session.League,
		TabIndex:  session.TabIndex,
		CookieRef: cookieRef,
	}
	if err := s.repo.Save(ctx, record); err != nil {
		if previous.CookieRef == cookieRef {
			return fmt.Errorf("save session record: %w", err)
		}
		if rollbackErr := s.store.Delete(ctx, cookieRef); rollbackErr != nil {
			return fmt.Errorf("save session record and rollback stored cookie: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("save session record: %w", err)
	}

	if previous.CookieRef != "" && previous.CookieRef != cookieRef {
		if err := s.store.Delete(ctx, previous.CookieRef); err != nil {
			var rollbackErr error
			if restoreErr := s.repo.Save(ctx, previous); restoreErr != nil {
				rollbackErr = errors.Join(rollbackErr, restoreErr)
			}
			if newCookieDeleteErr := s.store.Delete(ctx, cookieRef); newCookieDeleteErr != nil {
				rollbackErr = errors.Join(rollbackErr, newCookieDeleteErr)
			}
			if rollbackErr != nil {
				return fmt.Errorf("delete previous session cookie and rollback session update: %w", errors.Join(err, rollbackErr))
			}
			return fmt.Errorf("delete previous session cookie: %w", err)
		}
	}

	s.state.Set(session)

	return nil
}

// Load reads the persisted session and publishes it to the shared SessionState.
func (s *SessionService) Load(ctx context.Context) (domain.Session, error) {
	record, err := s.repo.Get(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session record: %w", err)
	}

	if record.CookieRef == "" {
		return domain.Session{}, fmt.Errorf("%w: no cookie reference stored", domain.ErrSessionIncomplete)
	}

	cookie, err := s.store.Get(ctx, record.CookieRef)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session cookie: %w", err)
	}

	session := domain.Session{
		Account:  record.Account,
		Cookie:   cookie,
		League:   record.League,
		TabIndex: record.TabIndex,
	}
	s.state.Set(session)

	return session, nil
}
