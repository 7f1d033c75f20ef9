package config

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

const (
	SecretProviderGCP = "gcp"
	SecretProviderEnv = "env"

	TransportHTTP = "http"
	TransportSurf = "surf"
)

type Config struct {
	// APIKeyName is the name of the secret holding the search API key.
	APIKeyName string `env:"API_KEY_NAME" envDefault:"api_key"`
	// ServiceAccountSecretName is the name of the secret holding the service
	// account used by the spreadsheet sink. Empty disables the sink.
	ServiceAccountSecretName string `env:"SERVICE_ACCOUNT_SECRET_NAME"`

	Search      SearchConfig      `envPrefix:"HOSTSCAN_"`
	Spreadsheet SpreadsheetConfig `envPrefix:"HOSTSCAN_SPREADSHEET_"`
	Secrets     SecretsConfig     `envPrefix:"HOSTSCAN_"`
	Schedule    string            `env:"HOSTSCAN_SCHEDULE" envDefault:"@hourly"`
}

type SearchConfig struct {
	Query     string `env:"QUERY" envDefault:"apache"`
	Limit     int    `env:"LIMIT" envDefault:"5"`
	BaseURL   string `env:"SEARCH_URL" envDefault:"https://api.shodan.io/shodan"`
	Transport string `env:"TRANSPORT" envDefault:"http"`
}

type SpreadsheetConfig struct {
	Title string `env:"TITLE" envDefault:"shodan output"`
}

type SecretsConfig struct {
	Provider     string `env:"SECRET_PROVIDER" envDefault:"gcp"`
	GCPProjectID string `env:"GCP_PROJECT"`
}

// SpreadsheetEnabled reports whether results should also be written to the
// spreadsheet.
func (c *Config) SpreadsheetEnabled() bool {
	return c.ServiceAccountSecretName != ""
}

func (c *Config) Validate() error {
	var err error

	if strings.TrimSpace(c.APIKeyName) == "" {
		err = multierror.Append(err, errors.New("API_KEY_NAME must not be empty"))
	}

	if strings.TrimSpace(c.Search.Query) == "" {
		err = multierror.Append(err, errors.New("HOSTSCAN_QUERY must not be empty"))
	}

	if c.Search.Limit < 0 {
		err = multierror.Append(err, errors.Errorf("HOSTSCAN_LIMIT must be positive, got %d", c.Search.Limit))
	}

	switch c.Search.Transport {
	case TransportHTTP, TransportSurf:
	default:
		err = multierror.Append(err, errors.Errorf("unknown HOSTSCAN_TRANSPORT '%s'", c.Search.Transport))
	}

	switch c.Secrets.Provider {
	case SecretProviderGCP:
		if c.Secrets.GCPProjectID == "" && !strings.HasPrefix(c.APIKeyName, "projects/") {
			err = multierror.Append(err, errors.New("HOSTSCAN_GCP_PROJECT or GOOGLE_CLOUD_PROJECT must be set to resolve short secret names"))
		}
	case SecretProviderEnv:
	default:
		err = multierror.Append(err, errors.Errorf("unknown HOSTSCAN_SECRET_PROVIDER '%s'", c.Secrets.Provider))
	}

	if _, parseErr := cron.ParseStandard(c.Schedule); parseErr != nil {
		err = multierror.Append(err, errors.Wrapf(parseErr, "invalid HOSTSCAN_SCHEDULE '%s'", c.Schedule))
	}

	return err
}

// Load reads the configuration from the environment. Variables defined in the
// given dotenv files are loaded first, without overriding the ones already set.
func Load(dotenvFiles ...string) (*Config, error) {
	for _, f := range dotenvFiles {
		if f == "" {
			continue
		}

		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, errors.Wrapf(err, "could not load dotenv file '%s'", f)
		}
	}

	conf := &Config{}
	if err := env.Parse(conf); err != nil {
		return nil, errors.Wrap(err, "could not parse environment")
	}

	if conf.Secrets.GCPProjectID == "" {
		conf.Secrets.GCPProjectID = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}

	return conf, nil
}
