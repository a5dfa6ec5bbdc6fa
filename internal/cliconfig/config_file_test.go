package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				NATSURL:       "nats://bus:4222",
				Subject:       "WALLET.file",
				ClickHouseURL: "http://ch:8123",
				Username:      "ingest",
				Password:      "secret",
				Database:      "analytics",
				Table:         "updates",
				BatchSize:     300,
				FlushInterval: "1s",
				HTTPTimeout:   "30s",
				MetricsAddr:   ":9102",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				NATSURL:       "nats://bus:4222",
				Subject:       "WALLET.file",
				ClickHouseURL: "http://ch:8123",
				Username:      "ingest",
				Password:      "secret",
				Database:      "analytics",
				Table:         "updates",
				BatchSize:     300,
				FlushInterval: time.Second,
				HTTPTimeout:   30 * time.Second,
				MetricsAddr:   ":9102",
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				Subject: "WALLET.file",
				Table:   "file_table",
			},
			changed: map[string]bool{"subject": true},
			initial: Config{
				Subject: "WALLET.flag",
				Table:   "flag_table",
			},
			expected: Config{
				Subject: "WALLET.flag", // unchanged because flag was set
				Table:   "file_table",
			},
		},
		{
			name: "invalid duration",
			fileConfig: FileConfig{
				FlushInterval: "soon",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyFileConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg.Subject != tt.expected.Subject {
				t.Errorf("Subject = %s, want %s", cfg.Subject, tt.expected.Subject)
			}
			if cfg.Table != tt.expected.Table {
				t.Errorf("Table = %s, want %s", cfg.Table, tt.expected.Table)
			}
			if cfg.BatchSize != tt.expected.BatchSize {
				t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, tt.expected.BatchSize)
			}
			if cfg.FlushInterval != tt.expected.FlushInterval {
				t.Errorf("FlushInterval = %v, want %v", cfg.FlushInterval, tt.expected.FlushInterval)
			}
			if cfg.HTTPTimeout != tt.expected.HTTPTimeout {
				t.Errorf("HTTPTimeout = %v, want %v", cfg.HTTPTimeout, tt.expected.HTTPTimeout)
			}
			if cfg.MetricsAddr != tt.expected.MetricsAddr {
				t.Errorf("MetricsAddr = %s, want %s", cfg.MetricsAddr, tt.expected.MetricsAddr)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
nats_url = "nats://bus:4222"
subject = "WALLET.updates"
clickhouse_url = "http://ch:8123"
batch_size = 500
flush_interval = "750ms"
filter_addresses = ["11111111111111111111111111111111"]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if fc.NATSURL != "nats://bus:4222" {
		t.Errorf("NATSURL = %s", fc.NATSURL)
	}
	if fc.BatchSize != 500 {
		t.Errorf("BatchSize = %d, want 500", fc.BatchSize)
	}
	if fc.FlushInterval != "750ms" {
		t.Errorf("FlushInterval = %s", fc.FlushInterval)
	}
	if len(fc.FilterAddresses) != 1 {
		t.Errorf("FilterAddresses = %v", fc.FilterAddresses)
	}
}

func TestLoadFileConfig_Missing(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("LoadFileConfig() = nil, want error for missing file")
	}
}
