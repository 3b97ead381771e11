package google

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
)

// AuthorizationFlow obtains an OAuth token interactively.
// It is an interface so the serve command can plug in the local callback
// flow while tests substitute a stub.
type AuthorizationFlow interface {
	Authorize(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error)
}

const (
	// DefaultCallbackAddr is where the local callback server listens.
	DefaultCallbackAddr = "localhost:8484"

	callbackPath = "/oauth/callback"
)

// LocalServerFlow runs the three-legged OAuth flow with a temporary local
// HTTP server receiving the authorization code. The authorization URL is
// printed to stderr for the user to open in a browser.
type LocalServerFlow struct {
	// Addr is the listen address for the callback server.
	// Defaults to DefaultCallbackAddr when empty.
	Addr string
}

// Authorize starts the callback server, prints the consent URL, and
// exchanges the returned code for a token. It blocks until the callback
// arrives or ctx is cancelled.
func (f *LocalServerFlow) Authorize(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	addr := f.Addr
	if addr == "" {
		addr = DefaultCallbackAddr
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start OAuth callback listener on %s: %w", addr, err)
	}

	// The redirect must match what the listener actually bound
	flowConf := *conf
	flowConf.RedirectURL = fmt.Sprintf("http://%s%s", listener.Addr().String(), callbackPath)

	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code in OAuth callback")
			http.Error(w, "No authorization code received", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Authentication successful</h1>"+
			"<p>You can close this window and return to the application.</p></body></html>")

		codeChan <- code
	})

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("OAuth callback server failed: %w", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	// Prompt on stderr; stdout carries the MCP stdio transport
	authURL := flowConf.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Fprintf(os.Stderr, "\nVisit the following URL to authorize this application:\n\n%s\n\nWaiting for authorization...\n", authURL)

	select {
	case code := <-codeChan:
		token, err := flowConf.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
		}
		return token, nil
	case err := <-errChan:
		return nil, err
	case <-ctx.Done():
		return nil, fmt.Errorf("authorization cancelled: %w", ctx.Err())
	}
}
