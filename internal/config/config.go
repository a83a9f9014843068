package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
		// ExposeErrorDetails adds the underlying error text to 500 responses.
		ExposeErrorDetails bool `yaml:"exposeErrorDetails"`
	} `yaml:"server"`
	Data struct {
		Dir string `yaml:"dir"`
	} `yaml:"data"`
	Roster struct {
		// Cache is "memory" or "redis".
		Cache string `yaml:"cache"`
		// TTL of "0s" reloads the roster on every login.
		TTL string `yaml:"ttl"`
	} `yaml:"roster"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Results struct {
		// Backend is one of sqlite, postgres, redis, firestore, memory.
		Backend      string `yaml:"backend"`
		Root         string `yaml:"root"`
		Partition    string `yaml:"partition"`
		MirrorByYear bool   `yaml:"mirrorByYear"`
		// YearFallback is "unknown" or "current".
		YearFallback string `yaml:"yearFallback"`
		RedisPrefix  string `yaml:"redisPrefix"`
	} `yaml:"results"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Firestore struct {
		ProjectID       string `yaml:"projectId"`
		CredentialsFile string `yaml:"credentialsFile"`
	} `yaml:"firestore"`
	Export struct {
		ArchiveDir string `yaml:"archiveDir"`
		Schedule   string `yaml:"schedule"`
		Format     string `yaml:"format"`
	} `yaml:"export"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Data.Dir = "data"
	cfg.Roster.Cache = "memory"
	cfg.Roster.TTL = "0s"
	cfg.Results.Backend = "sqlite"
	cfg.Results.Root = "Results"
	cfg.Results.Partition = "EBSU"
	cfg.Results.YearFallback = "unknown"
	cfg.Results.RedisPrefix = "results"
	cfg.SQLite.Path = "data/results.db"
	cfg.Export.Format = "csv"
	cfg.Log.Level = "info"
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
