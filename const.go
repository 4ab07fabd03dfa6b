// Go Turso HTTP Driver - Turso/LibSQL driver for Go's database/sql package
//
// Copyright (c) 2025 The goturso authors. All right reserved.
//

package goturso

import (
	"fmt"
	"runtime"
)

const (
	headerAuthorizationKey = "Authorization"
	headerBearerToken      = "Bearer %v"
	headerRequestIDKey     = "X-Request-Id"

	headerContentTypeApplicationJSON = "application/json"
	headerAcceptTypeApplicationJSON  = "application/json"
)

// pipelinePath is appended to the database base URL for every batch.
const pipelinePath = "/v2/pipeline"

const clientType = "Go"

// platform consists of compiler, OS and architecture type in string
var platform = fmt.Sprintf("%v-%v-%v", runtime.Compiler, runtime.GOOS, runtime.GOARCH)

// userAgent shows up in User-Agent HTTP header
var userAgent = fmt.Sprintf("%v/%v/%v/%v", clientType, TursoGoDriverVersion, runtime.Version(), platform)
