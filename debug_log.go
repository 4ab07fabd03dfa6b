// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"encoding/json"
	"os"
	path "path/filepath"
	"time"
)

// debugLogger appends outgoing pipeline bodies to a JSON-lines file. A
// failure to write never aborts the request; it is logged and swallowed.
type debugLogger struct {
	name string
	path string
}

type debugLogEntry struct {
	Time     string          `json:"time"`
	Name     string          `json:"name"`
	Pipeline json.RawMessage `json:"pipeline"`
}

func newDebugLogger(name, dir string) *debugLogger {
	if name == "" {
		name = defaultDebugLogName
	}
	return &debugLogger{name: name, path: path.Join(dir, name+".log")}
}

func (dl *debugLogger) logRequest(body []byte) {
	entry := debugLogEntry{
		Time:     time.Now().UTC().Format(time.RFC3339Nano),
		Name:     dl.name,
		Pipeline: json.RawMessage(body),
	}
	line, err := json.Marshal(entry)
	if err != nil {
		logger.Warnf("failed to encode debug log entry: %v", err)
		return
	}
	f, err := os.OpenFile(dl.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		logger.Warnf("failed to open debug log %v: %v", dl.path, err)
		return
	}
	defer f.Close()
	if _, err = f.Write(append(line, '\n')); err != nil {
		logger.Warnf("failed to append to debug log %v: %v", dl.path, err)
	}
}
