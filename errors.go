// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"fmt"
)

// TursoError is an error type including various Turso specific information.
type TursoError struct {
	Number      int
	Message     string
	MessageArgs []interface{}
	HTTPCode    int // HTTP status of the failed pipeline request, 0 if not applicable
}

func (te *TursoError) Error() string {
	message := te.Message
	if len(te.MessageArgs) > 0 {
		message = fmt.Sprintf(te.Message, te.MessageArgs...)
	}
	if te.HTTPCode != 0 {
		return fmt.Sprintf("%06d (HTTP %d): %s", te.Number, te.HTTPCode, message)
	}
	return fmt.Sprintf("%06d: %s", te.Number, message)
}

const (
	// connection

	// ErrCodeInvalidConnCode is an error code for the case where a connection is not available or in invalid state.
	ErrCodeInvalidConnCode = 260000
	// ErrCodeEmptyHostCode is an error code for the case where a DSN doesn't include a host
	ErrCodeEmptyHostCode = 260001
	// ErrCodeFailedToParsePort is an error code for the case where a DSN includes an invalid port number
	ErrCodeFailedToParsePort = 260002
	// ErrCodeFailedToParseDSN is an error code for the case where a DSN cannot be parsed as a URL at all
	ErrCodeFailedToParseDSN = 260003
	// ErrCodeFailedToFindDSNInToml is an error code for the case where the connection name is missing from connections.toml
	ErrCodeFailedToFindDSNInToml = 260004
	// ErrCodeTomlFileParsingFailed is an error code for the case where connections.toml carries a malformed entry
	ErrCodeTomlFileParsingFailed = 260005
	// ErrCodeInvalidFilePermission is an error code for the case where connections.toml is readable by other users
	ErrCodeInvalidFilePermission = 260006
	// ErrCodeUnknownTimezone is an error code for the case where the configured timezone name cannot be resolved
	ErrCodeUnknownTimezone = 260007

	// binding and pipeline assembly

	// ErrCodeUnsupportedBindType is an error code for the case where a bound Go value has no protocol representation
	ErrCodeUnsupportedBindType = 261000
	// ErrCodeInvalidRequestType is an error code for the case where a pipeline request type is neither execute nor close
	ErrCodeInvalidRequestType = 261001

	// pipeline execution

	// ErrCodePipelineFailure is an error code wrapping any transport or HTTP failure of a pipeline request
	ErrCodePipelineFailure = 262000
	// ErrCodeEmptyPipelineResponse is an error code for the case where the server returned no statement result
	ErrCodeEmptyPipelineResponse = 262001

	// result decoding

	// ErrCodeColumnIndexOutOfRange is an error code for the case where a column lookup is past the column count
	ErrCodeColumnIndexOutOfRange = 263000

	// transactions

	// ErrCodeNoReadOnlyTransaction is an error code for the case where a read-only transaction is requested
	ErrCodeNoReadOnlyTransaction = 264000
	// ErrCodeNoDefaultTransactionIsolationLevel is an error code for the case where a non-default isolation level is requested
	ErrCodeNoDefaultTransactionIsolationLevel = 264001
	// ErrCodeTransactionDone is an error code for the case where a finished transaction is committed or rolled back again
	ErrCodeTransactionDone = 264002
)

const (
	// ErrMsgFailedToParsePort is an error message for the case where a DSN includes an invalid port number
	ErrMsgFailedToParsePort = "failed to parse a port number. port: %v"

	errMsgFailedToParseDSN         = "failed to parse DSN: %v"
	errMsgFailedToFindDSNInToml    = "failed to find connection name %v in connections.toml"
	errMsgFailedToParseTomlFile    = "failed to parse connections.toml. key: %v, value: %v"
	errMsgInvalidFilePermission    = "file %v is readable or writable by group or others"
	errMsgUnknownTimezone          = "failed to resolve timezone name: %v"
	errMsgUnsupportedBindType      = "unsupported Go type for binding: %T"
	errMsgInvalidRequestType       = "invalid pipeline request type: %v"
	errMsgPipelineTransportFailure = "pipeline request failed: %v"
	errMsgPipelineHTTPFailure      = "pipeline request rejected. HTTP status: %v, body: %v"
	errMsgPipelineDecodeFailure    = "failed to decode pipeline response body: %v"
	errMsgEmptyPipelineResponse    = "pipeline response carried no statement result"
	errMsgColumnIndexOutOfRange    = "column index %v is out of range [0, %v)"
	errMsgNoReadOnlyTransaction    = "read-only transactions are not supported"
	errMsgNoDefaultIsolationLevel  = "only the default transaction isolation level is supported"
	errMsgTransactionDone          = "transaction has already been committed or rolled back"
)

var (
	// preformatted errors

	// ErrInvalidConn is returned if a connection is not available or in invalid state.
	ErrInvalidConn = &TursoError{
		Number:  ErrCodeInvalidConnCode,
		Message: "invalid connection",
	}
	// ErrEmptyHost is returned if a DSN doesn't include a host.
	ErrEmptyHost = &TursoError{
		Number:  ErrCodeEmptyHostCode,
		Message: "host is empty",
	}
)
