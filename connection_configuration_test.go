// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"os"
	path "path/filepath"
	"runtime"
	"testing"
	"time"
)

func writeConnectionsToml(t *testing.T, contents string, perm os.FileMode) string {
	t.Helper()
	dir := t.TempDir()
	tomlPath := path.Join(dir, "connections.toml")
	if err := os.WriteFile(tomlPath, []byte(contents), perm); err != nil {
		t.Fatalf("failed to write toml file: %v", err)
	}
	return dir
}

func TestLoadConnectionConfig(t *testing.T) {
	dir := writeConnectionsToml(t, `
[default]
host = "db-org.turso.io"
auth_token = "tok123"
tz = "Asia/Tokyo"
request_timeout = 30
`, 0o600)
	t.Setenv("TURSO_HOME", dir)
	t.Setenv("TURSO_DEFAULT_CONNECTION_NAME", "")

	cfg, err := LoadConnectionConfig()
	assertNilF(t, err)
	assertEqualE(t, cfg.Host, "db-org.turso.io")
	assertEqualE(t, cfg.AuthToken, "tok123")
	assertEqualE(t, cfg.Timezone, "Asia/Tokyo")
	assertEqualE(t, cfg.RequestTimeout, 30*time.Second)
	assertEqualE(t, cfg.Protocol, "https")
	assertEqualE(t, cfg.Port, 443)
}

func TestLoadConnectionConfigFromURL(t *testing.T) {
	dir := writeConnectionsToml(t, `
[staging]
url = "libsql://staging-org.turso.io:8443?tz=UTC"
auth_token = "stagingtok"
`, 0o600)
	t.Setenv("TURSO_HOME", dir)
	t.Setenv("TURSO_DEFAULT_CONNECTION_NAME", "staging")

	cfg, err := LoadConnectionConfig()
	assertNilF(t, err)
	assertEqualE(t, cfg.Host, "staging-org.turso.io")
	assertEqualE(t, cfg.Port, 8443)
	// the token set beside the url key survives when the url carries none
	assertEqualE(t, cfg.AuthToken, "stagingtok")
}

func TestLoadConnectionConfigMissingName(t *testing.T) {
	dir := writeConnectionsToml(t, `
[default]
host = "db-org.turso.io"
`, 0o600)
	t.Setenv("TURSO_HOME", dir)
	t.Setenv("TURSO_DEFAULT_CONNECTION_NAME", "nosuchprofile")

	_, err := LoadConnectionConfig()
	var te *TursoError
	assertErrorsAsF(t, err, &te)
	assertEqualE(t, te.Number, ErrCodeFailedToFindDSNInToml)
}

func TestLoadConnectionConfigBadValueType(t *testing.T) {
	dir := writeConnectionsToml(t, `
[default]
host = 42
`, 0o600)
	t.Setenv("TURSO_HOME", dir)
	t.Setenv("TURSO_DEFAULT_CONNECTION_NAME", "")

	_, err := LoadConnectionConfig()
	var te *TursoError
	assertErrorsAsF(t, err, &te)
	assertEqualE(t, te.Number, ErrCodeTomlFileParsingFailed)
}

func TestLoadConnectionConfigRejectsOpenPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file permissions are not validated on windows")
	}
	dir := writeConnectionsToml(t, `
[default]
host = "db-org.turso.io"
`, 0o644)
	t.Setenv("TURSO_HOME", dir)
	t.Setenv("TURSO_DEFAULT_CONNECTION_NAME", "")

	_, err := LoadConnectionConfig()
	var te *TursoError
	assertErrorsAsF(t, err, &te)
	assertEqualE(t, te.Number, ErrCodeInvalidFilePermission)
}
