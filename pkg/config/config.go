package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/hzpp/hzpp/pkg/util"
)

// Endpoints are the portal URLs the client talks to. They default to the
// public HŽPP hosts and exist as configuration so tests and mirrors can
// redirect them.
type Endpoints struct {
	BaseURL            string `yaml:"base_url"`
	PortalURL          string `yaml:"portal_url"`
	TransportationsURL string `yaml:"transportations_url"`
	TrainStatusURL     string `yaml:"train_status_url"`

	LocomotivesURL string `yaml:"locomotives_url"`
	WagonsURL      string `yaml:"wagons_url"`
	TrainsURL      string `yaml:"trains_url"`
}

type Config struct {
	// AuthToken is the bearer token for the live train status endpoint.
	AuthToken string `yaml:"auth_token"`

	// MinuteDeviationTrainInfo is the window in minutes around a train's
	// scheduled departure within which live info is fetched; -1 disables the
	// gate and always fetches.
	MinuteDeviationTrainInfo int `yaml:"minute_deviation_train_info"`

	// CacheTimeToLiveSeconds is the result cache entry lifetime; zero or
	// negative disables caching entirely.
	CacheTimeToLiveSeconds int `yaml:"cache_time_to_live_seconds"`

	Endpoints Endpoints `yaml:"endpoints"`
}

func Defaults() Config {
	return Config{
		MinuteDeviationTrainInfo: 15,
		CacheTimeToLiveSeconds:   10800,
		Endpoints: Endpoints{
			BaseURL:            "https://www.hzpp.hr",
			PortalURL:          "https://prodaja.hzpp.hr/hr/Ticket/Journey",
			TransportationsURL: "https://prodaja.hzpp.hr/hr/Ticket/GetTransportations",
			TrainStatusURL:     "https://traindelay.hzpp.hr/train/composition",
			LocomotivesURL:     "https://www.hzpp.hr/lokomotive",
			WagonsURL:          "https://www.hzpp.hr/vagoni",
			TrainsURL:          "https://www.hzpp.hr/vlakovi",
		},
	}
}

// Load reads an optional YAML file over the defaults and then applies
// HZPP_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvironment(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnvironment(cfg *Config) {
	env := util.GetEnvironmentVariables()

	if env["HZPP_AUTH_TOKEN"] != "" {
		cfg.AuthToken = env["HZPP_AUTH_TOKEN"]
	}
	if env["HZPP_MINUTE_DEVIATION"] != "" {
		if n, err := strconv.Atoi(env["HZPP_MINUTE_DEVIATION"]); err == nil {
			cfg.MinuteDeviationTrainInfo = n
		}
	}
	if env["HZPP_CACHE_TTL_SECONDS"] != "" {
		if n, err := strconv.Atoi(env["HZPP_CACHE_TTL_SECONDS"]); err == nil {
			cfg.CacheTimeToLiveSeconds = n
		}
	}
}

func (c *Config) Validate() error {
	if c.MinuteDeviationTrainInfo < -1 {
		return fmt.Errorf("minute_deviation_train_info must be -1 or a minute count, got %d", c.MinuteDeviationTrainInfo)
	}
	if c.Endpoints.PortalURL == "" || c.Endpoints.TransportationsURL == "" {
		return fmt.Errorf("portal endpoints are required")
	}

	return nil
}
