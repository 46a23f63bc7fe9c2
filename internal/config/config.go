package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	ListingsBaseURL   string `env:"LISTINGS_BASE_URL" envDefault:"https://backend.lalpurjanepal.com.np"`
	ListingsPublicURL string `env:"LISTINGS_PUBLIC_URL" envDefault:"https://lalpurjanepal.com.np"`

	OverpassURL     string        `env:"OVERPASS_URL" envDefault:"https://overpass-api.de/api/interpreter"`
	OverpassTimeout time.Duration `env:"OVERPASS_TIMEOUT" envDefault:"30s"`

	// Empty disables search history persistence.
	PostgresURL string `env:"POSTGRES_URL"`

	CacheTTL          time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	SaveSearchHistory bool          `env:"SAVE_SEARCH_HISTORY" envDefault:"true"`
}

func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
