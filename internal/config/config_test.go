package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thenoetrevino/coffeehub/internal/models"
)

// ============================================================================
// CONFIG
// ============================================================================

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	if defaults.Quit != "q" {
		t.Errorf("Default Quit key = %s, want q", defaults.Quit)
	}
	if defaults.Connect != "c" {
		t.Errorf("Default Connect key = %s, want c", defaults.Connect)
	}
	if defaults.NextTab != "tab" {
		t.Errorf("Default NextTab key = %s, want tab", defaults.NextTab)
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("COFFEEHUB_CONFIG", "")
	t.Setenv("COFFEEHUB_CREDENTIALS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}

	if cfg.DatabaseName != models.DefaultDatabaseName {
		t.Errorf("DatabaseName = %s, want %s", cfg.DatabaseName, models.DefaultDatabaseName)
	}
	if cfg.GraphDatabaseName != models.DefaultGraphDatabaseName {
		t.Errorf("GraphDatabaseName = %s, want %s", cfg.GraphDatabaseName, models.DefaultGraphDatabaseName)
	}
	if cfg.CredentialsPath != "credentials.json" {
		t.Errorf("CredentialsPath = %s, want credentials.json", cfg.CredentialsPath)
	}
	if cfg.ConnectTimeout != 10*time.Second {
		t.Errorf("ConnectTimeout = %v, want 10s", cfg.ConnectTimeout)
	}
	if cfg.AutoConnect {
		t.Error("AutoConnect should default to false")
	}
}

func TestLoadConfigWithFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("COFFEEHUB_CONFIG", "")
	t.Setenv("COFFEEHUB_CREDENTIALS", "")

	configDir := filepath.Join(tempDir, "coffeehub")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	configContent := `database_name: "other_db"
auto_connect: true
connect_timeout: 3s
key_mappings:
  quit: "x"
`
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with config file failed: %v", err)
	}

	if cfg.DatabaseName != "other_db" {
		t.Errorf("DatabaseName = %s, want other_db", cfg.DatabaseName)
	}
	if !cfg.AutoConnect {
		t.Error("AutoConnect should be true")
	}
	if cfg.ConnectTimeout != 3*time.Second {
		t.Errorf("ConnectTimeout = %v, want 3s", cfg.ConnectTimeout)
	}
	if cfg.KeyMappings.Quit != "x" {
		t.Errorf("Quit key = %s, want x", cfg.KeyMappings.Quit)
	}
	// Unspecified values should use defaults
	if cfg.KeyMappings.Edit != "e" {
		t.Errorf("Edit key = %s, want e (default)", cfg.KeyMappings.Edit)
	}
	if cfg.GraphDatabaseName != models.DefaultGraphDatabaseName {
		t.Errorf("GraphDatabaseName = %s, want default", cfg.GraphDatabaseName)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "custom.yaml")
	if err := os.WriteFile(configPath, []byte("assets_dir: pics\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COFFEEHUB_CONFIG", configPath)
	t.Setenv("COFFEEHUB_CREDENTIALS", "/etc/coffeehub/creds.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.AssetsDir != "pics" {
		t.Errorf("AssetsDir = %s, want pics", cfg.AssetsDir)
	}
	if cfg.CredentialsPath != "/etc/coffeehub/creds.json" {
		t.Errorf("CredentialsPath = %s, want env override", cfg.CredentialsPath)
	}
}

func TestSaveConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("COFFEEHUB_CONFIG", "")
	t.Setenv("COFFEEHUB_CREDENTIALS", "")

	cfg := DefaultConfig()
	cfg.AutoFillPassword = true
	cfg.KeyMappings.Quit = "Q"

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() after Save() failed: %v", err)
	}
	if !loaded.AutoFillPassword {
		t.Error("AutoFillPassword not persisted")
	}
	if loaded.KeyMappings.Quit != "Q" {
		t.Errorf("Quit key = %s, want Q", loaded.KeyMappings.Quit)
	}
}

// ============================================================================
// CREDENTIALS
// ============================================================================

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write credentials: %v", err)
	}
	return path
}

func TestLoadCredentials(t *testing.T) {
	path := writeCredentials(t, `{
  "mysql": {"acc": "root", "pass": "pw", "host": "localhost", "port": 3307},
  "neo4j": {"uri": "neo4j://localhost:7687", "acc": "neo4j", "pass": "pw"},
  "redis": {"host": "localhost", "port": 6379, "pass": "", "db": 2},
  "mongo": {"uri": "mongodb://localhost:27017"}
}`)

	creds, err := LoadCredentials(path)
	if err != nil {
		t.Fatalf("LoadCredentials() failed: %v", err)
	}
	if creds.MySQL.Addr() != "localhost:3307" {
		t.Errorf("MySQL addr = %s", creds.MySQL.Addr())
	}
	if creds.Redis.Addr() != "localhost:6379" || creds.Redis.DB != 2 {
		t.Errorf("Redis = %+v", creds.Redis)
	}
	if creds.Neo4j.Account != "neo4j" {
		t.Errorf("Neo4j account = %s", creds.Neo4j.Account)
	}
}

func TestLoadCredentials_MissingBackend(t *testing.T) {
	path := writeCredentials(t, `{
  "mysql": {"acc": "root", "pass": "pw", "host": "localhost"},
  "neo4j": {"uri": "neo4j://localhost:7687"},
  "redis": {"host": "localhost"}
}`)

	_, err := LoadCredentials(path)
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var ve *models.ValidationError
	if errors.As(err, &ve) && ve.Field != "mongo" {
		t.Errorf("Field = %s, want mongo", ve.Field)
	}
}

func TestLoadCredentials_DefaultPorts(t *testing.T) {
	m := &MySQLCredentials{Host: "db"}
	if m.Addr() != "db:3306" {
		t.Errorf("MySQL addr = %s, want db:3306", m.Addr())
	}
	r := &RedisCredentials{Host: "cache"}
	if r.Addr() != "cache:6379" {
		t.Errorf("Redis addr = %s, want cache:6379", r.Addr())
	}
}

func TestLoadCredentials_BadFile(t *testing.T) {
	if _, err := LoadCredentials(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadCredentials(writeCredentials(t, "{not json")); err == nil {
		t.Error("expected error for malformed file")
	}
}
