// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

// TursoGoDriverVersion is the version of the Go Turso HTTP driver
const TursoGoDriverVersion = "0.4.0"
