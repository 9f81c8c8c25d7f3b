package google

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateAccountName(t *testing.T) {
	valid := []string{"default", "work", "work-email", "personal_email", "account123"}
	for _, account := range valid {
		if err := validateAccountName(account); err != nil {
			t.Errorf("validateAccountName(%q) = %v, want nil", account, err)
		}
	}

	invalid := []string{"", "my account", "account@work", "work/personal", "work.email", "../escape"}
	for _, account := range invalid {
		if err := validateAccountName(account); err == nil {
			t.Errorf("validateAccountName(%q) = nil, want error", account)
		}
	}
}

func TestGetTokenFilePath(t *testing.T) {
	for account, want := range map[string]string{
		"default": "google-default.token",
		"work":    "google-work.token",
	} {
		if got := filepath.Base(getTokenFilePath(account)); got != want {
			t.Errorf("getTokenFilePath(%q) base = %q, want %q", account, got, want)
		}
	}
}

func TestHasTokenForAccount_InvalidNames(t *testing.T) {
	if HasTokenForAccount("invalid account") {
		t.Error("expected false for an account name with spaces")
	}
	if HasTokenForAccount("") {
		t.Error("expected false for an empty account name")
	}
}

func TestHasTokenForAccount_WithTokenFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	if HasTokenForAccount("work") {
		t.Fatal("expected no token before one is written")
	}

	tokenFile := getTokenFilePath("work")
	if err := os.MkdirAll(filepath.Dir(tokenFile), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tokenFile, []byte("access refresh"), 0600); err != nil {
		t.Fatal(err)
	}

	if !HasTokenForAccount("work") {
		t.Error("expected a token after the file is written")
	}
}

func TestMigrateDefaultToken(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	cacheDir := filepath.Join(userCacheDir(), cacheDirName)
	if err := os.MkdirAll(cacheDir, 0700); err != nil {
		t.Fatal(err)
	}

	oldTokenFile := filepath.Join(cacheDir, "google.token")
	newTokenFile := filepath.Join(cacheDir, "google-default.token")

	tokenData := []byte("test_access_token test_refresh_token")
	if err := os.WriteFile(oldTokenFile, tokenData, 0600); err != nil {
		t.Fatal(err)
	}

	if err := MigrateDefaultToken(); err != nil {
		t.Fatalf("MigrateDefaultToken() error = %v", err)
	}

	if _, err := os.Stat(oldTokenFile); !os.IsNotExist(err) {
		t.Error("legacy token file should be gone after migration")
	}
	migrated, err := os.ReadFile(newTokenFile)
	if err != nil {
		t.Fatalf("expected per-account token file after migration: %v", err)
	}
	if string(migrated) != string(tokenData) {
		t.Errorf("token data changed during migration: got %q, want %q", migrated, tokenData)
	}

	// A second run must be a no-op.
	if err := MigrateDefaultToken(); err != nil {
		t.Fatalf("second MigrateDefaultToken() error = %v", err)
	}
}

func TestMigrateDefaultToken_NoLegacyFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	if err := MigrateDefaultToken(); err != nil {
		t.Errorf("MigrateDefaultToken() without a legacy file = %v, want nil", err)
	}
}

func TestGetOAuthConfig_MissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")

	if _, err := GetOAuthConfig(); err == nil {
		t.Error("expected an error when client credentials are unset")
	}
}

func TestGetOAuthConfig_ReadonlyScope(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")

	conf, err := GetOAuthConfig()
	if err != nil {
		t.Fatalf("GetOAuthConfig() error = %v", err)
	}
	if len(conf.Scopes) != 1 || !strings.HasSuffix(conf.Scopes[0], "calendar.readonly") {
		t.Errorf("expected only the read-only calendar scope, got %v", conf.Scopes)
	}
}

func TestGetAuthenticationErrorMessage(t *testing.T) {
	msg := GetAuthenticationErrorMessage("work")
	if !strings.Contains(msg, "work") {
		t.Errorf("message should name the account: %q", msg)
	}
	if !strings.Contains(msg, "homecal auth") {
		t.Errorf("message should point at the auth command: %q", msg)
	}
}

func TestHasToken_UsesDefaultAccount(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	if HasToken() != HasTokenForAccount("default") {
		t.Error("HasToken() should match HasTokenForAccount(\"default\")")
	}
}
