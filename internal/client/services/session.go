// Package services contains application services for the Blood Connect client.
// This file defines the session manager: account signup, login, logout and
// the signed-in profile mirrored in the credential store's session slot.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/dmitrijs2005/bloodconnect/internal/client/models"
	"github.com/dmitrijs2005/bloodconnect/internal/client/storage"
	"github.com/dmitrijs2005/bloodconnect/internal/common"
	"github.com/dmitrijs2005/bloodconnect/internal/cryptox"
	"github.com/dmitrijs2005/bloodconnect/internal/logging"
)

// DefaultLoginLatency is the simulated round trip of login and signup.
const DefaultLoginLatency = time.Second

// PasswordMode selects how signup stores passwords.
type PasswordMode string

const (
	// PasswordPlain stores the password as typed.
	PasswordPlain PasswordMode = "plain"
	// PasswordArgon2id stores a salted argon2id hash. Plaintext records
	// written earlier still log in.
	PasswordArgon2id PasswordMode = "argon2id"
)

// ParsePasswordMode maps a config value to a PasswordMode. Empty means plain.
func ParsePasswordMode(s string) (PasswordMode, error) {
	switch PasswordMode(s) {
	case "", PasswordPlain:
		return PasswordPlain, nil
	case PasswordArgon2id:
		return PasswordArgon2id, nil
	}
	return "", fmt.Errorf("%w: unknown password mode %q", ErrValidation, s)
}

// State is a snapshot of the session manager.
type State struct {
	User    *models.SessionProfile
	Loading bool
}

// SessionService is what the UI sees of the session manager.
//
// Login and Signup report expected negative outcomes (wrong credentials,
// duplicate email) as false with a nil error; the error is reserved for
// credential store failures. Neither can be cancelled once started.
type SessionService interface {
	User() (models.SessionProfile, bool)
	IsLoading() bool
	State() State

	Login(ctx context.Context, email, password string) (bool, error)
	Signup(ctx context.Context, name, email, password string) (bool, error)
	Logout(ctx context.Context) error

	Subscribe(fn func(State)) error
	Unsubscribe(fn func(State)) error
}

// SessionOptions tunes a SessionManager. The zero value gives no latency,
// plain passwords and a discarding logger.
type SessionOptions struct {
	Latency      time.Duration
	PasswordMode PasswordMode
	Logger       logging.Logger
}

const topicStateChanged = "session:state"

// SessionManager owns the signed-in state and every write to the accounts
// and session slots.
type SessionManager struct {
	store storage.Store
	log   logging.Logger
	bus   EventBus.Bus

	latency time.Duration
	mode    PasswordMode
	// sleep is replaced in tests to hold an operation in flight.
	sleep func(time.Duration)

	mu        sync.RWMutex
	user      *models.SessionProfile
	hydrating bool
	inflight  int
}

var _ SessionService = (*SessionManager)(nil)

// NewSessionManager returns a manager in the loading state with no user.
// Call Hydrate to restore a persisted session.
func NewSessionManager(store storage.Store, opts SessionOptions) *SessionManager {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	mode := opts.PasswordMode
	if mode == "" {
		mode = PasswordPlain
	}
	return &SessionManager{
		store:     store,
		log:       log.With("component", "session"),
		bus:       EventBus.New(),
		latency:   opts.Latency,
		mode:      mode,
		sleep:     time.Sleep,
		hydrating: true,
	}
}

// Hydrate reads the session slot and leaves the loading state. A malformed
// session, including a profile without an id, is logged and treated as
// signed out.
func (m *SessionManager) Hydrate(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)

	var profile *models.SessionProfile
	_, err := readSlot(ctx, m.store, storage.SlotSession, &profile)
	if errors.Is(err, errCorruptSlot) {
		m.log.Warn(ctx, "ignoring malformed session", "error", err)
		profile, err = nil, nil
	}
	if err == nil && profile != nil && profile.ID == "" {
		m.log.Warn(ctx, "ignoring session without id")
		profile = nil
	}

	m.mu.Lock()
	m.hydrating = false
	if err == nil {
		m.user = profile
	}
	m.mu.Unlock()
	m.publish()

	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if profile != nil {
		m.log.Debug(ctx, "session restored", "email", profile.Email)
	}
	return nil
}

// User returns the signed-in profile.
func (m *SessionManager) User() (models.SessionProfile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return models.SessionProfile{}, false
	}
	return *m.user, true
}

// IsLoading is true during hydration and while a login or signup runs.
func (m *SessionManager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadingLocked()
}

func (m *SessionManager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st := State{Loading: m.loadingLocked()}
	if m.user != nil {
		u := *m.user
		st.User = &u
	}
	return st
}

func (m *SessionManager) loadingLocked() bool {
	return m.hydrating || m.inflight > 0
}

// Subscribe registers fn for state changes. fn runs synchronously on the
// goroutine that changed the state and must not call Subscribe itself.
func (m *SessionManager) Subscribe(fn func(State)) error {
	return m.bus.Subscribe(topicStateChanged, fn)
}

func (m *SessionManager) Unsubscribe(fn func(State)) error {
	return m.bus.Unsubscribe(topicStateChanged, fn)
}

func (m *SessionManager) publish() {
	m.bus.Publish(topicStateChanged, m.State())
}

func (m *SessionManager) begin() {
	m.mu.Lock()
	m.inflight++
	m.mu.Unlock()
	m.publish()
}

func (m *SessionManager) end() {
	m.mu.Lock()
	m.inflight--
	m.mu.Unlock()
	m.publish()
}

func (m *SessionManager) setUser(p *models.SessionProfile) {
	m.mu.Lock()
	m.user = p
	m.mu.Unlock()
	m.publish()
}

// Login signs in the account whose email and password both match exactly.
// On a miss the current user is left as it was.
func (m *SessionManager) Login(ctx context.Context, email, password string) (bool, error) {
	ctx = context.WithoutCancel(ctx)
	m.begin()
	defer m.end()

	m.sleep(m.latency)

	accounts, err := m.loadAccounts(ctx, m.store)
	if err != nil {
		return false, err
	}

	for _, a := range accounts {
		if a.Email != email || !m.passwordMatches(a.Password, password) {
			continue
		}
		profile := a.Profile()
		if err := writeSlot(ctx, m.store, storage.SlotSession, profile); err != nil {
			return false, fmt.Errorf("failed to save session: %w", err)
		}
		m.setUser(&profile)
		m.log.Info(ctx, "login succeeded", "email", email)
		return true, nil
	}

	m.log.Info(ctx, "login rejected", "email", email)
	return false, nil
}

// Signup creates an account and signs it in. The duplicate check, the
// account append and the session write happen in one store update, so two
// concurrent signups for one email cannot both succeed.
func (m *SessionManager) Signup(ctx context.Context, name, email, password string) (bool, error) {
	ctx = context.WithoutCancel(ctx)
	m.begin()
	defer m.end()

	m.sleep(m.latency)

	var created *models.Account
	err := m.store.Update(ctx, func(ctx context.Context, tx storage.Repository) error {
		created = nil

		accounts, err := m.loadAccounts(ctx, tx)
		if err != nil {
			return err
		}
		for _, a := range accounts {
			if a.Email == email {
				return nil
			}
		}

		acc := models.Account{
			ID:       common.NewID(),
			Name:     name,
			Email:    email,
			Password: m.encodePassword(password),
		}
		accounts = append(accounts, acc)

		if err := writeSlot(ctx, tx, storage.SlotAccounts, accounts); err != nil {
			return fmt.Errorf("failed to save accounts: %w", err)
		}
		if err := writeSlot(ctx, tx, storage.SlotSession, acc.Profile()); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		created = &acc
		return nil
	})
	if err != nil {
		return false, err
	}

	if created == nil {
		m.log.Info(ctx, "signup rejected: email taken", "email", email)
		return false, nil
	}

	profile := created.Profile()
	m.setUser(&profile)
	m.log.Info(ctx, "signup succeeded", "email", email, "id", created.ID)
	return true, nil
}

// Logout clears the user and removes the session slot. Signing out twice is
// the same as once. The in-memory user is cleared even when the store
// delete fails.
func (m *SessionManager) Logout(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	m.setUser(nil)

	if err := m.store.Delete(ctx, storage.SlotSession); err != nil {
		m.log.Error(ctx, "failed to remove session", "error", err)
		return fmt.Errorf("failed to remove session: %w", err)
	}
	m.log.Debug(ctx, "logged out")
	return nil
}

// loadAccounts reads the accounts slot. A malformed collection is logged and
// treated as empty.
func (m *SessionManager) loadAccounts(ctx context.Context, r storage.Repository) ([]models.Account, error) {
	var accounts []models.Account
	_, err := readSlot(ctx, r, storage.SlotAccounts, &accounts)
	if errors.Is(err, errCorruptSlot) {
		m.log.Warn(ctx, "ignoring malformed accounts", "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	return accounts, nil
}

func (m *SessionManager) encodePassword(password string) string {
	if m.mode == PasswordArgon2id {
		return cryptox.HashPassword([]byte(password))
	}
	return password
}

// passwordMatches accepts an exact match first, so a plaintext password that
// happens to look like an encoded hash still logs in.
func (m *SessionManager) passwordMatches(stored, candidate string) bool {
	if cryptox.EqualStrings(stored, candidate) {
		return true
	}
	if !cryptox.IsHashed(stored) {
		return false
	}
	ok, err := cryptox.VerifyPassword(stored, []byte(candidate))
	return err == nil && ok
}
