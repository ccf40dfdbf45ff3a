package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr       string
	JWTSecret        string
	JWTUser          string
	JWTPassword      string
	SearchTimeout    time.Duration
	TLSCertFile      string
	TLSKeyFile       string
	AmadeusURL       string
	AmadeusAPIKey    string
	AmadeusAPISecret string
}

func Load() *Config {
	v := viper.New()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("auth_user", "demo")
	v.SetDefault("auth_pass", "demo123")
	v.SetDefault("search_timeout", "15s")

	v.SetDefault("amadeus_url", "https://test.api.amadeus.com")

	if path := os.Getenv("TRAVEL_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		// Fallback to conventional locations for local dev
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/travel-search") // add the container path
	}

	if err := v.ReadInConfig(); err != nil {
		log.Printf("no config file found, using defaults + env vars: %v", err)
	}

	v.AutomaticEnv()

	to, err := time.ParseDuration(v.GetString("search_timeout"))
	if err != nil {
		log.Fatalf("bad search_timeout: %v", err)
	}

	// Missing provider credentials are not fatal here: the search path
	// reports them as a configuration error per request.
	return &Config{
		ListenAddr:       v.GetString("listen_addr"),
		JWTSecret:        v.GetString("jwt_secret"),
		JWTUser:          v.GetString("auth_user"),
		JWTPassword:      v.GetString("auth_pass"),
		SearchTimeout:    to,
		TLSCertFile:      os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:       os.Getenv("TLS_KEY_FILE"),
		AmadeusURL:       v.GetString("amadeus_url"),
		AmadeusAPIKey:    v.GetString("amadeus_api_key"),
		AmadeusAPISecret: v.GetString("amadeus_api_secret"),
	}
}
