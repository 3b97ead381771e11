package google

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	googleauth "golang.org/x/oauth2/google"

	"github.com/avollmer/gsheets-mcp/internal/logging"
)

// Credential source names, in resolution order.
const (
	SourceServiceAccount   = "service_account"
	SourceOAuthCached      = "oauth_cached"
	SourceOAuthRefreshed   = "oauth_refreshed"
	SourceOAuthInteractive = "oauth_interactive"
)

// Credential is the single process-wide credential.
// It is resolved once at startup and never replaced afterwards.
type Credential struct {
	TokenSource oauth2.TokenSource
	Source      string
}

// HTTPClient returns an HTTP client that authenticates with the credential.
func (c *Credential) HTTPClient(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, c.TokenSource)
}

// Resolver walks the credential strategies in a fixed order:
// service account key first, then cached OAuth token, refreshed token,
// and finally the interactive flow. The first strategy that yields a
// usable credential wins.
type Resolver struct {
	ServiceAccountPath string
	CredentialsPath    string
	TokenPath          string

	// Flow performs the interactive authorization step.
	Flow AuthorizationFlow

	Logger *slog.Logger
}

// tokenState classifies a cached token for the OAuth branch.
type tokenState int

const (
	tokenMissing tokenState = iota
	tokenValid
	tokenRefreshable
	tokenUnusable
)

func classifyToken(token *oauth2.Token) tokenState {
	switch {
	case token == nil:
		return tokenMissing
	case token.Valid():
		return tokenValid
	case token.RefreshToken != "":
		return tokenRefreshable
	default:
		return tokenUnusable
	}
}

// Resolve runs the strategy chain and returns the process credential.
// A failing service account load is logged and skipped so the OAuth chain
// still gets its turn. OAuth failures are terminal: a broken client
// secret, a failed refresh, or a failed interactive flow all abort
// resolution.
func (r *Resolver) Resolve(ctx context.Context) (*Credential, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cred, ok := r.resolveServiceAccount(ctx, logger); ok {
		return cred, nil
	}

	return r.resolveOAuth(ctx, logger)
}

func (r *Resolver) resolveServiceAccount(ctx context.Context, logger *slog.Logger) (*Credential, bool) {
	if r.ServiceAccountPath == "" {
		return nil, false
	}

	data, err := os.ReadFile(r.ServiceAccountPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("service account key unreadable, falling back to OAuth",
				logging.Strategy(SourceServiceAccount), logging.Err(err))
		}
		return nil, false
	}

	conf, err := googleauth.JWTConfigFromJSON(data, Scopes()...)
	if err != nil {
		logger.Warn("service account key invalid, falling back to OAuth",
			logging.Strategy(SourceServiceAccount), logging.Err(err))
		return nil, false
	}

	logger.Info("authenticated with service account", logging.Strategy(SourceServiceAccount))
	return &Credential{
		TokenSource: conf.TokenSource(ctx),
		Source:      SourceServiceAccount,
	}, true
}

func (r *Resolver) resolveOAuth(ctx context.Context, logger *slog.Logger) (*Credential, error) {
	data, err := os.ReadFile(r.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("no usable credential: service account unavailable and client secret %s unreadable: %w", r.CredentialsPath, err)
	}

	conf, err := googleauth.ConfigFromJSON(data, Scopes()...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OAuth client secret: %w", err)
	}

	token, err := LoadToken(r.TokenPath)
	if err != nil && !os.IsNotExist(err) {
		logger.Warn("token cache unreadable, re-authorizing", logging.Err(err))
	}

	switch classifyToken(token) {
	case tokenValid:
		logger.Info("authenticated with cached token", logging.Strategy(SourceOAuthCached))
		return &Credential{
			TokenSource: conf.TokenSource(ctx, token),
			Source:      SourceOAuthCached,
		}, nil

	case tokenRefreshable:
		// A failed refresh is fatal, not a trigger for the interactive flow
		ts := conf.TokenSource(ctx, token)
		fresh, err := ts.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to refresh cached token: %w", err)
		}
		if err := SaveToken(r.TokenPath, fresh); err != nil {
			logger.Warn("failed to persist refreshed token", logging.Err(err))
		}
		logger.Info("authenticated with refreshed token", logging.Strategy(SourceOAuthRefreshed))
		return &Credential{
			TokenSource: oauth2.ReuseTokenSource(fresh, ts),
			Source:      SourceOAuthRefreshed,
		}, nil

	default:
		return r.resolveInteractive(ctx, logger, conf)
	}
}

func (r *Resolver) resolveInteractive(ctx context.Context, logger *slog.Logger, conf *oauth2.Config) (*Credential, error) {
	if r.Flow == nil {
		return nil, fmt.Errorf("no cached token and no authorization flow configured")
	}

	token, err := r.Flow.Authorize(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("interactive authorization failed: %w", err)
	}

	if err := SaveToken(r.TokenPath, token); err != nil {
		logger.Warn("failed to persist token", logging.Err(err))
	}

	logger.Info("authenticated interactively", logging.Strategy(SourceOAuthInteractive))
	return &Credential{
		TokenSource: conf.TokenSource(ctx, token),
		Source:      SourceOAuthInteractive,
	}, nil
}
