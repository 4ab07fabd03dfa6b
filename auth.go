// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// inspectAuthToken parses the configured bearer token as a JWT without
// verifying its signature and warns when it is missing or already expired.
// The server is the authority on token validity; this only surfaces the
// problem client-side before the first request fails.
func inspectAuthToken(token string) {
	if token == "" {
		logger.Warn("no auth token configured; pipeline requests will be unauthenticated")
		return
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		logger.Debugf("auth token is not a parsable JWT: %v", err)
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if exp.Before(time.Now()) {
		logger.Warnf("auth token expired at %v", exp.Time.UTC())
	}
}
