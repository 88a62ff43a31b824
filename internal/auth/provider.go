package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/robertgryska01/pro8link/internal/config"
)

// Scopes required by the sync core: full spreadsheet access plus the Apps
// Script execution scope for the remote refresh trigger.
var Scopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/script.projects",
}

// Readiness failure reasons. A caller can tell a missing credential from
// a network failure from a timeout.
var (
	ErrNotConfigured = errors.New("auth: refresh token or client secret not configured")
	ErrReadyTimeout  = errors.New("auth: timed out waiting for initial token")
)

// Provider owns the OAuth2 token lifecycle: it obtains the first bearer
// token, exposes a readiness gate that all core operations await, and
// refreshes proactively before expiry so outbound calls never carry a stale
// token.
type Provider struct {
	base         oauth2.TokenSource
	readyTimeout time.Duration

	mu    sync.Mutex
	token *oauth2.Token
	err   error
	ready chan struct{}
}

// NewProvider builds a provider from the service configuration. The refresh
// token grant is the headless equivalent of the dashboard's implicit flow.
func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.RefreshToken == "" || cfg.ClientSecret == "" {
		return nil, ErrNotConfigured
	}

	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}
	base := oc.TokenSource(context.Background(), &oauth2.Token{RefreshToken: cfg.RefreshToken})

	return &Provider{
		base:         base,
		readyTimeout: cfg.ReadyTimeout,
		ready:        make(chan struct{}),
	}, nil
}

// Start obtains the initial token and begins the proactive refresh loop. The
// readiness gate resolves, with success or failure, once the first attempt
// completes.
func (p *Provider) Start(ctx context.Context) {
	go p.run(ctx)
}

func (p *Provider) run(ctx context.Context) {
	token, err := p.base.Token()

	p.mu.Lock()
	p.token = token
	if err != nil {
		p.err = fmt.Errorf("auth: initial token fetch failed: %w", err)
	}
	p.mu.Unlock()
	close(p.ready)

	if err != nil {
		log.Error().Err(err).Msg("Initial token fetch failed")
		return
	}
	log.Info().Time("expiry", token.Expiry).Msg("Obtained initial access token")

	// Refresh when under five minutes to expiry, checking once a minute.
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refreshIfExpiring()
		}
	}
}

func (p *Provider) refreshIfExpiring() {
	p.mu.Lock()
	current := p.token
	p.mu.Unlock()

	if current != nil && time.Until(current.Expiry) > 5*time.Minute {
		return
	}

	token, err := p.base.Token()
	if err != nil {
		log.Warn().Err(err).Msg("Token refresh failed, will retry on next tick")
		return
	}

	p.mu.Lock()
	p.token = token
	p.mu.Unlock()
	log.Debug().Time("expiry", token.Expiry).Msg("Refreshed access token")
}

// AwaitReady blocks until the first token attempt has completed, the context
// is cancelled, or the readiness timeout elapses.
func (p *Provider) AwaitReady(ctx context.Context) error {
	select {
	case <-p.ready:
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.readyTimeout):
		return ErrReadyTimeout
	}
}

// Token implements oauth2.TokenSource so the provider can back the Sheets
// service client directly.
func (p *Provider) Token() (*oauth2.Token, error) {
	select {
	case <-p.ready:
	case <-time.After(p.readyTimeout):
		return nil, ErrReadyTimeout
	}

	p.mu.Lock()
	token, err := p.token, p.err
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if token.Valid() {
		return token, nil
	}

	// Expired between refresh ticks; fetch synchronously.
	token, err = p.base.Token()
	if err != nil {
		return nil, fmt.Errorf("auth: token refresh failed: %w", err)
	}
	p.mu.Lock()
	p.token = token
	p.mu.Unlock()
	return token, nil
}

// BearerToken returns the current access token string for direct HTTP use.
func (p *Provider) BearerToken(ctx context.Context) (string, error) {
	if err := p.AwaitReady(ctx); err != nil {
		return "", err
	}
	token, err := p.Token()
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}
