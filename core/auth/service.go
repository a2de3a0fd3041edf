package auth

import (
	"context"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Sky-walkerX/Examcell/core"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNoSession           = errors.New("no session found; please log in")
	ErrSessionExpired      = errors.New("session expired; please log in again")
	ErrInvalidAuthResponse = errors.New("invalid response received from authentication server")
)

type (
	// Authenticator exchanges Credentials for a token.
	Authenticator interface {
		Login(ctx context.Context, creds Credentials) (LoginResponse, error)
	}

	// Store persists the current Session.
	// Load returns ErrNoSession when there is none.
	Store interface {
		Load(ctx context.Context) (Session, error)
		Save(ctx context.Context, sess Session) error
		Clear(ctx context.Context) error
	}

	Service struct {
		authenticator Authenticator
		store         Store
		validate      *validator.Validate
		translator    ut.Translator
	}
)

func NewService(authenticator Authenticator, store Store, validate *validator.Validate, translator ut.Translator) *Service {
	return &Service{
		authenticator: authenticator,
		store:         store,
		validate:      validate,
		translator:    translator,
	}
}

// Login authenticates against the backend and stores the new Session.
func (svc *Service) Login(ctx context.Context, creds Credentials) (Session, error) {
	if err := creds.Validate(svc.validate); err != nil {
		return Session{}, core.TranslateValidationErrors(err, svc.translator)
	}

	resp, err := svc.authenticator.Login(ctx, creds)
	if err != nil {
		return Session{}, err
	}
	if resp.Token == "" || resp.ID == "" {
		return Session{}, ErrInvalidAuthResponse
	}

	sess := NewSession(resp, NowFunc())
	if err := svc.store.Save(ctx, sess); err != nil {
		return Session{}, errors.Wrap(err, "saving session")
	}
	return sess, nil
}

func (svc *Service) Logout(ctx context.Context) error {
	return svc.store.Clear(ctx)
}

// Current returns the stored Session if it has not expired.
func (svc *Service) Current(ctx context.Context) (Session, error) {
	return currentSession(ctx, svc.store)
}

func currentSession(ctx context.Context, store Store) (Session, error) {
	sess, err := store.Load(ctx)
	if err != nil {
		return Session{}, err
	}
	if sess.IsExpired(NowFunc()) {
		return Session{}, ErrSessionExpired
	}
	return sess, nil
}

// TokenSource hands out the bearer token of the stored Session.
type TokenSource struct {
	store Store
}

func NewTokenSource(store Store) *TokenSource {
	return &TokenSource{store: store}
}

// Token returns an empty token when nobody is logged in.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	sess, err := currentSession(ctx, ts.store)
	if err != nil {
		if errors.Cause(err) == ErrNoSession {
			return "", nil
		}
		return "", err
	}
	return sess.Token, nil
}
