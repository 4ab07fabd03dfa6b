// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"os"
	path "path/filepath"
	"runtime"
	"strings"
	"time"

	toml "github.com/BurntSushi/toml"
)

// LoadConnectionConfig returns a connection config loaded from the toml file.
// By default, TURSO_HOME(toml file path) is os.home/.turso
// and TURSO_DEFAULT_CONNECTION_NAME(connection profile) is 'default'
func LoadConnectionConfig() (*Config, error) {
	cfg := &Config{}
	dsn := getConnectionDSN(os.Getenv("TURSO_DEFAULT_CONNECTION_NAME"))
	tursoConfigDir, err := getTomlFilePath(os.Getenv("TURSO_HOME"))
	if err != nil {
		return nil, err
	}
	tomlFilePath := path.Join(tursoConfigDir, "connections.toml")
	err = validateFilePermission(tomlFilePath)
	if err != nil {
		return nil, err
	}
	tomlInfo := make(map[string]interface{})
	_, err = toml.DecodeFile(tomlFilePath, &tomlInfo)
	if err != nil {
		return nil, err
	}
	connectionName, exist := tomlInfo[dsn]
	if !exist {
		return nil, &TursoError{
			Number:      ErrCodeFailedToFindDSNInToml,
			Message:     errMsgFailedToFindDSNInToml,
			MessageArgs: []interface{}{dsn},
		}
	}
	connectionConfig, ok := connectionName.(map[string]interface{})
	if !ok {
		return nil, &TursoError{
			Number:      ErrCodeTomlFileParsingFailed,
			Message:     errMsgFailedToParseTomlFile,
			MessageArgs: []interface{}{dsn, connectionName},
		}
	}
	err = parseToml(cfg, connectionConfig)
	if err != nil {
		return nil, err
	}
	fillMissingConfigParameters(cfg)
	return cfg, nil
}

func parseToml(cfg *Config, connection map[string]interface{}) error {
	var parsingErr error
	err := &TursoError{
		Number:  ErrCodeTomlFileParsingFailed,
		Message: errMsgFailedToParseTomlFile,
	}
	for key, value := range connection {
		switch strings.ToLower(key) {
		case "url":
			var v string
			v, parsingErr = parseString(value)
			if parsingErr != nil {
				err.MessageArgs = []interface{}{key, value}
				return err
			}
			parsed, parseErr := ParseDSN(v)
			if parseErr != nil {
				return parseErr
			}
			token := cfg.AuthToken
			*cfg = *parsed
			if cfg.AuthToken == "" {
				cfg.AuthToken = token
			}
		case "host":
			cfg.Host, parsingErr = parseString(value)
			if parsingErr != nil {
				err.MessageArgs = []interface{}{key, value}
				return err
			}
		case "port":
			cfg.Port, parsingErr = parseInt(value)
			if parsingErr != nil {
				err.MessageArgs = []interface{}{key, value}
				return err
			}
		case "protocol":
			cfg.Protocol, parsingErr = parseString(value)
			if parsingErr != nil {
				err.MessageArgs = []interface{}{key, value}
				return err
			}
		case "auth_token", "authtoken", "token":
			cfg.AuthToken, parsingErr = parseString(value)
			if parsingErr != nil {
				err.MessageArgs = []interface{}{key, value}
				return err
			}
		case "tz", "timezone":
			cfg.Timezone, parsingErr = parseString(value)
			if parsingErr != nil {
				err.MessageArgs = []interface{}{key, value}
				return err
			}
		case "request_timeout":
			var seconds int
			seconds, parsingErr = parseInt(value)
			if parsingErr != nil {
				err.MessageArgs = []interface{}{key, value}
				return err
			}
			cfg.RequestTimeout = time.Duration(seconds) * time.Second
		case "debug_log":
			cfg.DebugLog, parsingErr = parseBool(value)
			if parsingErr != nil {
				err.MessageArgs = []interface{}{key, value}
				return err
			}
		case "debug_log_name":
			cfg.DebugLogName, parsingErr = parseString(value)
			if parsingErr != nil {
				err.MessageArgs = []interface{}{key, value}
				return err
			}
		case "debug_log_path":
			cfg.DebugLogPath, parsingErr = parseString(value)
			if parsingErr != nil {
				err.MessageArgs = []interface{}{key, value}
				return err
			}
		default:
			logger.Debugf("unknown connections.toml key is ignored: %v", key)
		}
	}
	return nil
}

func parseString(value interface{}) (string, error) {
	v, ok := value.(string)
	if !ok {
		return "", &TursoError{
			Number:  ErrCodeTomlFileParsingFailed,
			Message: "value is not a string",
		}
	}
	return v, nil
}

func parseInt(value interface{}) (int, error) {
	v, ok := value.(int64)
	if !ok {
		return 0, &TursoError{
			Number:  ErrCodeTomlFileParsingFailed,
			Message: "value is not an integer",
		}
	}
	return int(v), nil
}

func parseBool(value interface{}) (bool, error) {
	v, ok := value.(bool)
	if !ok {
		return false, &TursoError{
			Number:  ErrCodeTomlFileParsingFailed,
			Message: "value is not a boolean",
		}
	}
	return v, nil
}

func getTomlFilePath(filePath string) (string, error) {
	if filePath != "" {
		return path.Abs(filePath)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return path.Join(homeDir, ".turso"), nil
}

func getConnectionDSN(dsn string) string {
	if dsn != "" {
		return dsn
	}
	return "default"
}

// validateFilePermission rejects connection files readable or writable by
// group or others. connections.toml carries auth tokens.
func validateFilePermission(filePath string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return err
	}
	if fileInfo.Mode().Perm()&0o077 != 0 {
		return &TursoError{
			Number:      ErrCodeInvalidFilePermission,
			Message:     errMsgInvalidFilePermission,
			MessageArgs: []interface{}{filePath},
		}
	}
	return nil
}
