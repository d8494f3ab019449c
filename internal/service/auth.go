package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edunexa/academy-api/internal/core"
	domainauth "github.com/edunexa/academy-api/internal/domain/auth"
	"github.com/edunexa/academy-api/internal/domain/model"
	"github.com/edunexa/academy-api/internal/ports"
	"github.com/google/uuid"
)

// Sentinel errors surfaced to the HTTP layer. Login failures deliberately
// collapse into ErrInvalidCredentials so responses never reveal whether an
// account exists.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrSessionExpired     = errors.New("session expired")
)

// DefaultSessionTTL bounds password-login sessions. SSO sessions inherit the
// IdP token expiry instead.
const DefaultSessionTTL = 12 * time.Hour

// AuthServiceOptions groups dependencies for AuthService. Provider and Roles
// are only required when SSO login is enabled.
type AuthServiceOptions struct {
	Users    core.UserRepository
	Sessions ports.SessionStore
	Hasher   ports.PasswordHasher
	Provider ports.AuthProvider
	Roles    ports.RoleMapper

	SessionTTL time.Duration
}

// AuthService orchestrates login, session retrieval, and profile updates by
// coordinating the account repository, credential verification, and session
// persistence.
type AuthService struct {
	users    core.UserRepository
	sessions ports.SessionStore
	hasher   ports.PasswordHasher
	provider ports.AuthProvider
	roles    ports.RoleMapper

	sessionTTL time.Duration
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Users == nil {
		panic("auth service requires a user repository")
	}
	if opts.Sessions == nil {
		panic("auth service requires a session store")
	}
	if opts.Hasher == nil {
		panic("auth service requires a password hasher")
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{
		users:      opts.Users,
		sessions:   opts.Sessions,
		hasher:     opts.Hasher,
		provider:   opts.Provider,
		roles:      opts.Roles,
		sessionTTL: ttl,
	}
}

// PasswordLoginInput groups parameters for a credential login.
// RoleHint, when set, requires the account to hold exactly that role; portals
// pass it so a student cannot sign in through the admin form.
type PasswordLoginInput struct {
	Email    string
	Password string
	RoleHint *domainauth.Role
}

// PasswordLogin verifies credentials and persists a fresh session.
func (s *AuthService) PasswordLogin(ctx context.Context, input PasswordLoginInput) (domainauth.Session, error) {
	if input.Email == "" || input.Password == "" {
		return domainauth.Session{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return domainauth.Session{}, ErrInvalidCredentials
		}
		return domainauth.Session{}, fmt.Errorf("look up account: %w", err)
	}

	if compareErr := s.hasher.Compare(user.PasswordHash, input.Password); compareErr != nil {
		return domainauth.Session{}, ErrInvalidCredentials
	}
	if input.RoleHint != nil && user.Role != *input.RoleHint {
		return domainauth.Session{}, ErrInvalidCredentials
	}
	if !user.Active {
		return domainauth.Session{}, ErrAccountDisabled
	}

	return s.startSession(ctx, user, time.Now().Add(s.sessionTTL))
}

// BeginLoginResult contains the result of beginning an SSO login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an SSO flow and returns the provider auth URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if s.provider == nil {
		return nil, errors.New("SSO login is not configured")
	}
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	input := ports.BeginInput{RedirectURL: redirectURL}
	authURL, state, nonce, err := s.provider.Begin(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteLoginInput groups parameters for completing an SSO login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLogin completes an SSO flow by exchanging the code for an identity
// and matching it against a local account. The IdP authenticates; the local
// account record stays authoritative for role and active state.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (domainauth.Session, error) {
	if s.provider == nil {
		return domainauth.Session{}, errors.New("SSO login is not configured")
	}
	if input.Code == "" {
		return domainauth.Session{}, errors.New("authorization code is required")
	}
	if input.State == "" {
		return domainauth.Session{}, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return domainauth.Session{}, errors.New("nonce parameter is required")
	}

	exchangeInput := ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	}
	identity, err := s.provider.Exchange(ctx, exchangeInput)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("exchange authorization code: %w", err)
	}

	// Group gate before the account lookup: identities whose groups map to
	// guest never reach the database.
	if s.roles != nil && !domainauth.ValidRole(s.roles.Map(identity.Groups)) {
		return domainauth.Session{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return domainauth.Session{}, ErrInvalidCredentials
		}
		return domainauth.Session{}, fmt.Errorf("look up account: %w", err)
	}
	if !user.Active {
		return domainauth.Session{}, ErrAccountDisabled
	}

	expiresAt := identity.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(s.sessionTTL)
	}
	return s.startSession(ctx, user, expiresAt)
}

// GetSession retrieves a session by ID, deleting it when expired.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (domainauth.Session, error) {
	if sessionID == "" {
		return domainauth.Session{}, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(time.Now()) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return domainauth.Session{}, errors.Join(ErrSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return domainauth.Session{}, ErrSessionExpired
	}

	return session, nil
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// UpdateProfile applies self-service profile changes for the session's
// account and refreshes the stored session snapshot so status responses see
// the new values immediately.
func (s *AuthService) UpdateProfile(
	ctx context.Context,
	session domainauth.Session,
	req model.UpdateProfileRequest,
) (domainauth.Session, error) {
	if err := req.Validate(); err != nil {
		return domainauth.Session{}, err
	}

	user, err := s.users.Update(ctx, session.User.ID, core.UpdateUserParams{Req: req.AsUserUpdate()})
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("update profile: %w", err)
	}

	refreshed, err := domainauth.NewSession(session.ID, user.Snapshot(), session.ExpiresAt)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("refresh session: %w", err)
	}
	if saveErr := s.sessions.Save(ctx, refreshed); saveErr != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", saveErr)
	}
	return refreshed, nil
}

func (s *AuthService) startSession(
	ctx context.Context,
	user *model.User,
	expiresAt time.Time,
) (domainauth.Session, error) {
	session, err := domainauth.NewSession(generateSessionID(), user.Snapshot(), expiresAt)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("build session: %w", err)
	}
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", saveErr)
	}
	return session, nil
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	// UUIDs are URL-safe and have good entropy
	return uuid.New().String()
}
