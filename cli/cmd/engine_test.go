package cmd

import (
	"flag"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/brrr/cli/config"
)

func newTestContext(t *testing.T) *cli.Context {
	t.Helper()
	app := &cli.App{Flags: EngineFlags()}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("config", "", "")
	return cli.NewContext(app, fs, nil)
}

func TestBuildStore_MemoryDefault(t *testing.T) {
	s, err := buildStore(config.StoreConfig{})
	if err != nil {
		t.Fatalf("buildStore: %v", err)
	}
	if s == nil {
		t.Fatal("expected a non-nil store")
	}
}

func TestBuildStore_UnknownBackend(t *testing.T) {
	if _, err := buildStore(config.StoreConfig{Backend: "bogus"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestBuildQueue_MemoryDefault(t *testing.T) {
	q, err := buildQueue(config.QueueConfig{})
	if err != nil {
		t.Fatalf("buildQueue: %v", err)
	}
	if q == nil {
		t.Fatal("expected a non-nil queue")
	}
}

func TestBuildQueue_UnknownBackend(t *testing.T) {
	if _, err := buildQueue(config.QueueConfig{Backend: "bogus"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestBuildEngine_DefaultsAndCleanup(t *testing.T) {
	c := newTestContext(t)

	b, cleanup, err := buildEngine(c)
	if err != nil {
		t.Fatalf("buildEngine: %v", err)
	}
	if b == nil {
		t.Fatal("expected a non-nil engine")
	}
	cleanup()
}
