// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	assertNilF(t, err)
	return signed
}

func captureWarnings(t *testing.T, f func()) string {
	t.Helper()
	var buf bytes.Buffer
	previousLevel := logger.GetLogLevel()
	logger.SetOutput(&buf)
	assertNilF(t, logger.SetLogLevel("warn"))
	defer func() {
		logger.SetOutput(os.Stderr)
		_ = logger.SetLogLevel(previousLevel)
	}()
	f()
	return buf.String()
}

func TestInspectAuthTokenEmpty(t *testing.T) {
	out := captureWarnings(t, func() {
		inspectAuthToken("")
	})
	assertStringContainsE(t, out, "no auth token configured")
}

func TestInspectAuthTokenExpired(t *testing.T) {
	token := signedToken(t, time.Now().Add(-time.Hour))
	out := captureWarnings(t, func() {
		inspectAuthToken(token)
	})
	assertStringContainsE(t, out, "auth token expired")
}

func TestInspectAuthTokenValid(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	out := captureWarnings(t, func() {
		inspectAuthToken(token)
	})
	assertEqualE(t, out, "")
}

func TestInspectAuthTokenNotAJWT(t *testing.T) {
	out := captureWarnings(t, func() {
		inspectAuthToken("opaque-api-key-not-a-jwt")
	})
	// non-JWT tokens are passed through without complaint; the server decides
	assertEqualE(t, out, "")
}
