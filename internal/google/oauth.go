package google

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/teemow/homecal/internal/logging"
)

const cacheDirName = "homecal"

var accountNameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// validateAccountName ensures the account name is safe to use as part of
// a file name.
func validateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name must not be empty")
	}
	if !accountNameRe.MatchString(account) {
		return fmt.Errorf("account name %q contains invalid characters (use letters, digits, - and _)", account)
	}
	return nil
}

// getTokenFilePath returns the token file location for an account.
func getTokenFilePath(account string) string {
	return filepath.Join(userCacheDir(), cacheDirName, "google-"+account+".token")
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return HasTokenForAccount("default")
}

// HasTokenForAccount checks if a valid OAuth token exists for the given account
func HasTokenForAccount(account string) bool {
	if err := validateAccountName(account); err != nil {
		return false
	}
	_, err := os.ReadFile(getTokenFilePath(account))
	return err == nil
}

// MigrateDefaultToken renames a legacy single-account token file
// (google.token) to the per-account layout (google-default.token).
// It is idempotent and a no-op when no legacy file exists.
func MigrateDefaultToken() error {
	cacheDir := filepath.Join(userCacheDir(), cacheDirName)
	oldFile := filepath.Join(cacheDir, "google.token")
	newFile := filepath.Join(cacheDir, "google-default.token")

	if _, err := os.Stat(oldFile); os.IsNotExist(err) {
		return nil
	}
	if _, err := os.Stat(newFile); err == nil {
		// Both exist; keep the per-account file and drop the legacy one.
		return os.Remove(oldFile)
	}
	if err := os.Rename(oldFile, newFile); err != nil {
		return fmt.Errorf("failed to migrate token file: %w", err)
	}
	return nil
}

// GetAuthURL returns the OAuth URL for user authorization
func GetAuthURL() (string, error) {
	conf, err := GetOAuthConfig()
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL("state", oauth2.AccessTypeOffline), nil
}

// SaveToken exchanges an authorization code for tokens and saves them
// for the default account
func SaveToken(ctx context.Context, authCode string) error {
	return SaveTokenForAccount(ctx, "default", authCode)
}

// SaveTokenForAccount exchanges an authorization code for tokens and
// saves them under the given account name
func SaveTokenForAccount(ctx context.Context, account, authCode string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}

	conf, err := GetOAuthConfig()
	if err != nil {
		return err
	}

	t, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	tokenFile := getTokenFilePath(account)
	if err := os.MkdirAll(filepath.Dir(tokenFile), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tokenData := t.AccessToken + " " + t.RefreshToken
	if err := os.WriteFile(tokenFile, []byte(tokenData), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	slog.Debug("saved OAuth token",
		logging.Account(account),
		"token", logging.SanitizeToken(t.AccessToken))

	return nil
}

// GetOAuthConfig returns the OAuth2 configuration for the Calendar API.
// Client credentials come from the environment (typically loaded from a
// .env file at startup).
func GetOAuthConfig() (*oauth2.Config, error) {
	const OOB = "urn:ietf:wg:oauth:2.0:oob"

	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  OOB,
		Scopes:       DefaultOAuthScopes,
	}, nil
}

// GetTokenSourceForAccount returns an OAuth2 token source for the stored
// token of the given account
func GetTokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	if err := validateAccountName(account); err != nil {
		return nil, err
	}

	conf, err := GetOAuthConfig()
	if err != nil {
		return nil, err
	}

	slurp, err := os.ReadFile(getTokenFilePath(account))
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %q", account)
	}

	f := strings.Fields(strings.TrimSpace(string(slurp)))
	if len(f) != 2 {
		return nil, fmt.Errorf("invalid token format")
	}

	ts := conf.TokenSource(ctx, &oauth2.Token{
		AccessToken:  f[0],
		TokenType:    "Bearer",
		RefreshToken: f[1],
		Expiry:       time.Unix(1, 0),
	})

	// Validate the token
	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("cached token is invalid: %w", err)
	}

	return ts, nil
}

// GetTokenSource returns an OAuth2 token source for the default account
func GetTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	return GetTokenSourceForAccount(ctx, "default")
}

// GetHTTPClientForAccount returns an HTTP client configured with OAuth2
// authentication for the given account.
// The client is configured to use HTTP/1.1 to avoid HTTP/2 protocol errors
func GetHTTPClientForAccount(ctx context.Context, account string) (*http.Client, error) {
	ts, err := GetTokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, ts)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	baseTransport := &http.Transport{
		ForceAttemptHTTP2: false,
	}
	transport.Base = baseTransport

	return client, nil
}

// GetAuthenticationErrorMessage returns the guidance shown when an API
// call fails for lack of a stored token.
func GetAuthenticationErrorMessage(account string) string {
	return fmt.Sprintf("no OAuth token for account %q; run 'homecal auth' to authorize Google Calendar access for this account", account)
}

func userCacheDir() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Caches")
	case "windows":
		for _, ev := range []string{"TEMP", "TMP"} {
			if v := os.Getenv(ev); v != "" {
				return v
			}
		}
		panic("No Windows TEMP or TMP environment variables found")
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".cache")
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
