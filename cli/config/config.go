package config

import (
	"fmt"
	"time"
)

// Config represents a brrr.yaml configuration file. All values are
// optional; a zero value leaves the corresponding backend or engine
// default in place.
type Config struct {
	Store      StoreConfig     `yaml:"store"`
	Queue      QueueConfig     `yaml:"queue"`
	SpawnLimit int             `yaml:"spawn_limit"`
	CAS        CASConfig       `yaml:"cas"`
	ColdStore  ColdStoreConfig `yaml:"cold_store"`
}

// StoreConfig selects and configures the Store backend.
type StoreConfig struct {
	// Backend is "memory" or "redis". Empty defaults to "memory".
	Backend string `yaml:"backend"`
	URL     string `yaml:"url"`
}

// QueueConfig selects and configures the Queue backend.
type QueueConfig struct {
	// Backend is "memory" or "redis". Empty defaults to "memory".
	Backend string `yaml:"backend"`
	URL     string `yaml:"url"`
	Key     string `yaml:"key"`
	// PollTimeout bounds each blocking receive. Empty uses the
	// backend's own default.
	PollTimeout Duration `yaml:"poll_timeout"`
	// Capacity bounds the in-memory queue's buffer. Ignored by redis.
	Capacity int `yaml:"capacity"`
}

// CASConfig tunes the Memory façade's compare-and-swap retry loop.
type CASConfig struct {
	RetryLimit int `yaml:"retry_limit"`
}

// ColdStoreConfig enables S3 overflow storage for oversized return
// values. Empty Bucket leaves cold storage disabled.
type ColdStoreConfig struct {
	Bucket         string `yaml:"bucket"`
	Prefix         string `yaml:"prefix"`
	Region         string `yaml:"region"`
	Endpoint       string `yaml:"endpoint"`
	UsePathStyle   bool   `yaml:"use_path_style"`
	ThresholdBytes int    `yaml:"threshold_bytes"`
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}
