package cliconfig

import (
	"errors"
	"testing"
	"time"

	"github.com/solstream/walletsink/internal/domain"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing nats url",
			mutate:  func(c *Config) { c.NATSURL = "" },
			wantErr: true,
		},
		{
			name:    "missing subject",
			mutate:  func(c *Config) { c.Subject = "" },
			wantErr: true,
		},
		{
			name:    "missing table",
			mutate:  func(c *Config) { c.Table = "" },
			wantErr: true,
		},
		{
			name:    "zero batch size",
			mutate:  func(c *Config) { c.BatchSize = 0 },
			wantErr: true,
		},
		{
			name:    "negative flush interval",
			mutate:  func(c *Config) { c.FlushInterval = -time.Second },
			wantErr: true,
		},
		{
			name: "malformed filter address",
			mutate: func(c *Config) {
				c.FilterAddresses = []string{"not-base58-0OIl"}
			},
			wantErr: true,
		},
		{
			name: "valid filter address",
			mutate: func(c *Config) {
				c.FilterAddresses = []string{"11111111111111111111111111111111"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidate_TrimsTrailingSlash(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ClickHouseURL = "http://ch.internal:8123/"

	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.ClickHouseURL != "http://ch.internal:8123" {
		t.Errorf("ClickHouseURL = %s, want trailing slash removed", cfg.ClickHouseURL)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BatchSize != 200 {
		t.Errorf("BatchSize = %d, want 200", cfg.BatchSize)
	}
	if cfg.FlushInterval != 500*time.Millisecond {
		t.Errorf("FlushInterval = %v, want 500ms", cfg.FlushInterval)
	}
	if cfg.Subject != "WALLET.updates" {
		t.Errorf("Subject = %s, want WALLET.updates", cfg.Subject)
	}
	if len(cfg.FilterAddresses) != 0 {
		t.Errorf("FilterAddresses = %v, want none", cfg.FilterAddresses)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"a,b,c", 3},
		{" a , b ,", 2},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); len(got) != tt.want {
			t.Errorf("splitList(%q) = %v, want %d entries", tt.in, got, tt.want)
		}
	}
}
