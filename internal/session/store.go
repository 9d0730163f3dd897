// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks who is logged in.
//
// The store is a small state machine with three states: Bootstrapping while
// the stored token is being verified at startup, Unauthenticated when no
// valid session exists, and Authenticated once the service has confirmed the
// identity behind the token. A held token alone never counts as a session;
// only a successful identity fetch moves the store to Authenticated.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jeranaias/parley-tui/internal/model"
)

// =============================================================================
// SESSION STATE
// =============================================================================

// State is the authentication state of the application.
type State int

const (
	// StateBootstrapping means the stored token is still being verified.
	StateBootstrapping State = iota
	// StateUnauthenticated means no valid session exists.
	StateUnauthenticated
	// StateAuthenticated means the service confirmed the user's identity.
	StateAuthenticated
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateBootstrapping:
		return "bootstrapping"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Gateway is the slice of the API client the store needs.
type Gateway interface {
	HasToken() bool
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, fullName, email, password string) error
	Me(ctx context.Context) (*model.User, error)
	ClearToken() error
}

// MinPasswordLen is the service's minimum password length, checked locally
// before a register request is sent.
const MinPasswordLen = 6

// =============================================================================
// SESSION STORE
// =============================================================================

// Store holds the current session state and identity.
type Store struct {
	mu      sync.Mutex
	state   State
	user    *model.User
	gateway Gateway
}

// NewStore creates a store in the Bootstrapping state.
func NewStore(gateway Gateway) *Store {
	return &Store{
		state:   StateBootstrapping,
		gateway: gateway,
	}
}

// State returns the current session state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the confirmed identity, or nil outside Authenticated.
func (s *Store) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAuthenticated reports whether a confirmed session exists.
func (s *Store) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// setState transitions the store, clearing the identity when leaving
// Authenticated.
func (s *Store) setState(state State, user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	if state == StateAuthenticated {
		s.user = user
	} else {
		s.user = nil
	}
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// Bootstrap resolves the startup state. With no stored token it settles on
// Unauthenticated immediately; otherwise it verifies the token with an
// identity fetch. Any verification failure lands on Unauthenticated rather
// than blocking startup.
func (s *Store) Bootstrap(ctx context.Context) State {
	if !s.gateway.HasToken() {
		s.setState(StateUnauthenticated, nil)
		return StateUnauthenticated
	}

	user, err := s.gateway.Me(ctx)
	if err != nil {
		// A 401 already cleared the token inside the gateway. Other
		// failures keep the stored token so a later launch can retry.
		s.setState(StateUnauthenticated, nil)
		return StateUnauthenticated
	}
	if !user.IsActive {
		// Deactivated accounts cannot hold a session, same as login.
		_ = s.gateway.ClearToken()
		s.setState(StateUnauthenticated, nil)
		return StateUnauthenticated
	}

	s.setState(StateAuthenticated, user)
	return StateAuthenticated
}

// Login exchanges credentials for a session. The store only becomes
// Authenticated once the follow-up identity fetch succeeds; a token with an
// unverifiable identity is discarded.
func (s *Store) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	if err := s.gateway.Login(ctx, email, password); err != nil {
		s.setState(StateUnauthenticated, nil)
		return nil, err
	}

	user, err := s.gateway.Me(ctx)
	if err != nil {
		_ = s.gateway.ClearToken()
		s.setState(StateUnauthenticated, nil)
		return nil, err
	}
	if !user.IsActive {
		_ = s.gateway.ClearToken()
		s.setState(StateUnauthenticated, nil)
		return nil, fmt.Errorf("account is deactivated")
	}

	s.setState(StateAuthenticated, user)
	return user, nil
}

// Register creates an account and starts a session. The service issues a
// token on registration just as it does on login, so the flow is the same as
// Login: token first, then the identity fetch that Authenticated requires.
func (s *Store) Register(ctx context.Context, fullName, email, password string) (*model.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" || email == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(password) < MinPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}

	if err := s.gateway.Register(ctx, fullName, email, password); err != nil {
		s.setState(StateUnauthenticated, nil)
		return nil, err
	}

	user, err := s.gateway.Me(ctx)
	if err != nil {
		_ = s.gateway.ClearToken()
		s.setState(StateUnauthenticated, nil)
		return nil, err
	}
	if !user.IsActive {
		_ = s.gateway.ClearToken()
		s.setState(StateUnauthenticated, nil)
		return nil, fmt.Errorf("account is deactivated")
	}

	s.setState(StateAuthenticated, user)
	return user, nil
}

// Logout ends the session and discards the stored token.
func (s *Store) Logout() error {
	err := s.gateway.ClearToken()
	s.setState(StateUnauthenticated, nil)
	return err
}

// ForceLogout ends the session after the service rejected the token. The
// gateway has already discarded the token, so only local state changes.
func (s *Store) ForceLogout() {
	s.setState(StateUnauthenticated, nil)
}
