// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultRequestTimeout = 60 * time.Second
	defaultTimezone       = "UTC"
	defaultDebugLogName   = "goturso"
)

// Config is a set of configuration parameters for a Turso database
type Config struct {
	Protocol string // http or https (optional, defaults to https)
	Host     string // database hostname
	Port     int    // port (optional, defaults to 443)

	AuthToken string // bearer token attached to every pipeline request

	Timezone string         // IANA timezone name applied to decoded datetime values, defaults to UTC
	Location *time.Location // resolved from Timezone at client construction

	RequestTimeout time.Duration // request read time

	DebugLog     bool   // append outgoing pipeline bodies to a debug log file
	DebugLogName string // debug log entry name, defaults to goturso
	DebugLogPath string // directory of the debug log file, defaults to the working directory
}

// baseURL returns the database endpoint the pipeline path is appended to.
func (cfg *Config) baseURL() string {
	return fmt.Sprintf("%s://%s:%d", cfg.Protocol, cfg.Host, cfg.Port)
}

// ParseDSN parses the DSN string to a Config.
//
// The DSN is a URL of the form
//
//	turso://host[:port]?authToken=...&tz=America/New_York
//
// The libsql, https and http schemes are accepted as well; http switches the
// transport to plain HTTP.
func ParseDSN(dsn string) (cfg *Config, err error) {
	cfg = &Config{}

	u, err := url.Parse(dsn)
	if err != nil {
		return nil, &TursoError{
			Number:      ErrCodeFailedToParseDSN,
			Message:     errMsgFailedToParseDSN,
			MessageArgs: []interface{}{err},
		}
	}
	switch u.Scheme {
	case "http":
		cfg.Protocol = "http"
	case "turso", "libsql", "https", "":
		cfg.Protocol = "https"
	default:
		return nil, &TursoError{
			Number:      ErrCodeFailedToParseDSN,
			Message:     errMsgFailedToParseDSN,
			MessageArgs: []interface{}{fmt.Sprintf("unknown scheme %v", u.Scheme)},
		}
	}
	cfg.Host = u.Hostname()
	if cfg.Host == "" {
		return nil, ErrEmptyHost
	}
	if p := u.Port(); p != "" {
		cfg.Port, err = strconv.Atoi(p)
		if err != nil {
			return nil, &TursoError{
				Number:      ErrCodeFailedToParsePort,
				Message:     ErrMsgFailedToParsePort,
				MessageArgs: []interface{}{p},
			}
		}
	}
	if err = parseDSNParams(cfg, u.Query()); err != nil {
		return nil, err
	}
	fillMissingConfigParameters(cfg)
	logger.Debugf("ParseDSN: %v://%v:%v, tz: %v", cfg.Protocol, cfg.Host, cfg.Port, cfg.Timezone)
	return cfg, nil
}

// parseDSNParams parses the DSN "query string".
func parseDSNParams(cfg *Config, params url.Values) (err error) {
	for key, values := range params {
		value := values[len(values)-1]
		switch strings.ToLower(key) {
		case "authtoken", "auth_token", "token":
			cfg.AuthToken = value
		case "tz", "timezone":
			cfg.Timezone = value
		case "protocol":
			cfg.Protocol = value
		case "timeout", "requesttimeout":
			var seconds int
			seconds, err = strconv.Atoi(value)
			if err != nil {
				return &TursoError{
					Number:      ErrCodeFailedToParseDSN,
					Message:     errMsgFailedToParseDSN,
					MessageArgs: []interface{}{fmt.Sprintf("invalid timeout %v", value)},
				}
			}
			cfg.RequestTimeout = time.Duration(seconds) * time.Second
		case "debuglog", "debug_log":
			cfg.DebugLog = value == "true" || value == "1"
		case "debuglogname", "debug_log_name":
			cfg.DebugLogName = value
		case "debuglogpath", "debug_log_path":
			cfg.DebugLogPath = value
		}
	}
	return nil
}

func fillMissingConfigParameters(cfg *Config) {
	if cfg.Protocol == "" {
		cfg.Protocol = "https"
	}
	if cfg.Port == 0 {
		if cfg.Protocol == "http" {
			cfg.Port = 80
		} else {
			cfg.Port = 443
		}
	}
	if cfg.Timezone == "" {
		cfg.Timezone = defaultTimezone
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.DebugLogName == "" {
		cfg.DebugLogName = defaultDebugLogName
	}
}

// DSN constructs a DSN string from the given Config.
func DSN(cfg *Config) (string, error) {
	if cfg.Host == "" {
		return "", ErrEmptyHost
	}
	fillMissingConfigParameters(cfg)
	params := url.Values{}
	if cfg.AuthToken != "" {
		params.Set("authToken", cfg.AuthToken)
	}
	if cfg.Timezone != defaultTimezone {
		params.Set("tz", cfg.Timezone)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		params.Set("timeout", strconv.Itoa(int(cfg.RequestTimeout/time.Second)))
	}
	if cfg.DebugLog {
		params.Set("debugLog", "true")
		if cfg.DebugLogName != defaultDebugLogName {
			params.Set("debugLogName", cfg.DebugLogName)
		}
		if cfg.DebugLogPath != "" {
			params.Set("debugLogPath", cfg.DebugLogPath)
		}
	}
	u := &url.URL{
		Scheme:   cfg.Protocol,
		Host:     fmt.Sprintf("%v:%v", cfg.Host, cfg.Port),
		RawQuery: params.Encode(),
	}
	return u.String(), nil
}
