package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "my-project")

	conf, err := Load()
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "api_key", conf.APIKeyName; e != g {
		t.Errorf("conf.APIKeyName: expected %q, got %q", e, g)
	}

	if conf.SpreadsheetEnabled() {
		t.Error("spreadsheet sink should be disabled by default")
	}

	if e, g := 5, conf.Search.Limit; e != g {
		t.Errorf("conf.Search.Limit: expected %d, got %d", e, g)
	}

	if e, g := "shodan output", conf.Spreadsheet.Title; e != g {
		t.Errorf("conf.Spreadsheet.Title: expected %q, got %q", e, g)
	}

	if e, g := "my-project", conf.Secrets.GCPProjectID; e != g {
		t.Errorf("conf.Secrets.GCPProjectID: expected %q, got %q", e, g)
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")

	data := strings.Join([]string{
		"API_KEY_NAME=search-key",
		"SERVICE_ACCOUNT_SECRET_NAME=sheets-sa",
		"HOSTSCAN_SECRET_PROVIDER=env",
		"HOSTSCAN_LIMIT=3",
		"HOSTSCAN_QUERY=nginx",
	}, "\n")

	if err := os.WriteFile(dotenv, []byte(data), 0600); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// Variables already set take precedence over the dotenv file
	t.Setenv("HOSTSCAN_QUERY", "openssh")

	// godotenv sets variables on the process, unset them once done
	for _, k := range []string{"API_KEY_NAME", "SERVICE_ACCOUNT_SECRET_NAME", "HOSTSCAN_SECRET_PROVIDER", "HOSTSCAN_LIMIT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	conf, err := Load(filepath.Join(dir, "missing.env"), dotenv)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "search-key", conf.APIKeyName; e != g {
		t.Errorf("conf.APIKeyName: expected %q, got %q", e, g)
	}

	if !conf.SpreadsheetEnabled() {
		t.Error("spreadsheet sink should be enabled")
	}

	if e, g := 3, conf.Search.Limit; e != g {
		t.Errorf("conf.Search.Limit: expected %d, got %d", e, g)
	}

	if e, g := "openssh", conf.Search.Query; e != g {
		t.Errorf("conf.Search.Query: expected %q, got %q", e, g)
	}
}

func TestValidate(t *testing.T) {
	conf := &Config{
		APIKeyName: " ",
		Search: SearchConfig{
			Query:     "apache",
			Limit:     -1,
			Transport: "carrier-pigeon",
		},
		Secrets: SecretsConfig{
			Provider: SecretProviderEnv,
		},
		Schedule: "every now and then",
	}

	err := conf.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected a *multierror.Error, got %T", err)
	}

	if e, g := 4, len(merr.Errors); e != g {
		t.Errorf("len(merr.Errors): expected %d, got %d\n%s", e, g, err)
	}
}
