package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Addr                string
	LogLevel            string
	JWTSecret           string
	JWTUser             string
	JWTPassword         string
	SearchTimeout       time.Duration
	StreamInterval      time.Duration
	TLSCertFile         string
	TLSKeyFile          string
	AmadeusURL          string
	AmadeusClientID     string
	AmadeusClientSecret string
}

func Load() *Config {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("auth_user", "demo")
	v.SetDefault("auth_pass", "demo123")
	v.SetDefault("search_timeout", "10s")
	v.SetDefault("stream_interval", "30s")

	v.SetDefault("amadeus_url", "https://test.api.amadeus.com")

	if path := os.Getenv("TRAVEL_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		// Fallback to conventional locations for local dev
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/travel-server") // add the container path
	}

	if err := v.ReadInConfig(); err != nil {
		log.Printf("no config file found, using defaults + env vars: %v", err)
	}

	v.AutomaticEnv()

	to, err := time.ParseDuration(v.GetString("search_timeout"))
	if err != nil {
		log.Fatalf("bad search_timeout: %v", err)
	}
	si, err := time.ParseDuration(v.GetString("stream_interval"))
	if err != nil {
		log.Fatalf("bad stream_interval: %v", err)
	}

	// A server without provider credentials cannot answer a single search,
	// so their absence is fatal at startup rather than a per-request error.
	if v.GetString("amadeus_clientid") == "" || v.GetString("amadeus_clientsecret") == "" {
		log.Fatal("amadeus credentials not configured: set AMADEUS_CLIENTID and AMADEUS_CLIENTSECRET")
	}

	return &Config{
		Addr:                v.GetString("addr"),
		LogLevel:            v.GetString("log_level"),
		JWTSecret:           v.GetString("jwt_secret"),
		JWTUser:             v.GetString("auth_user"),
		JWTPassword:         v.GetString("auth_pass"),
		SearchTimeout:       to,
		StreamInterval:      si,
		TLSCertFile:         os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:          os.Getenv("TLS_KEY_FILE"),
		AmadeusURL:          v.GetString("amadeus_url"),
		AmadeusClientID:     v.GetString("amadeus_clientid"),
		AmadeusClientSecret: v.GetString("amadeus_clientsecret"),
	}
}
