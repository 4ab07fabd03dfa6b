// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"context"
	"io"

	rlog "github.com/sirupsen/logrus"
)

type contextKey string

// LogKeyBaton is context key of the session baton
const LogKeyBaton contextKey = "LOG_BATON"

// LogKeyRequestID is context key of the client-generated request id
const LogKeyRequestID contextKey = "LOG_REQUEST_ID"

var logKeys = [...]contextKey{LogKeyBaton, LogKeyRequestID}

// TursoLogger Turso logger interface which abstracts away the underlying logging mechanism.
type TursoLogger interface {
	rlog.Ext1FieldLogger
	SetLogLevel(level string) error
	GetLogLevel() string
	WithContext(ctx context.Context) *rlog.Entry
	SetOutput(output io.Writer)
}

type defaultLogger struct {
	inner *rlog.Logger
}

// SetLogLevel set logging level for calls from the driver
func (log *defaultLogger) SetLogLevel(level string) error {
	actualLevel, err := rlog.ParseLevel(level)
	if err != nil {
		return err
	}
	log.inner.SetLevel(actualLevel)
	return nil
}

// GetLogLevel return current log level
func (log *defaultLogger) GetLogLevel() string {
	return log.inner.GetLevel().String()
}

// WithContext return Entry to include fields in logs
func (log *defaultLogger) WithContext(ctx context.Context) *rlog.Entry {
	fields := context2Fields(ctx)
	return log.inner.WithFields(*fields)
}

// CreateDefaultLogger return a new instance of TursoLogger with default config
func CreateDefaultLogger() TursoLogger {
	rLogger := rlog.New()
	var ret = defaultLogger{inner: rLogger}
	return &ret
}

func (log *defaultLogger) Tracef(format string, args ...interface{}) {
	log.inner.Tracef(format, args...)
}

func (log *defaultLogger) Debugf(format string, args ...interface{}) {
	log.inner.Debugf(format, args...)
}

func (log *defaultLogger) Infof(format string, args ...interface{}) {
	log.inner.Infof(format, args...)
}

func (log *defaultLogger) Printf(format string, args ...interface{}) {
	log.inner.Printf(format, args...)
}

func (log *defaultLogger) Warnf(format string, args ...interface{}) {
	log.inner.Warnf(format, args...)
}

func (log *defaultLogger) Warningf(format string, args ...interface{}) {
	log.inner.Warningf(format, args...)
}

func (log *defaultLogger) Errorf(format string, args ...interface{}) {
	log.inner.Errorf(format, args...)
}

func (log *defaultLogger) Fatalf(format string, args ...interface{}) {
	log.inner.Fatalf(format, args...)
}

func (log *defaultLogger) Panicf(format string, args ...interface{}) {
	log.inner.Panicf(format, args...)
}

func (log *defaultLogger) Trace(args ...interface{}) {
	log.inner.Trace(args...)
}

func (log *defaultLogger) Debug(args ...interface{}) {
	log.inner.Debug(args...)
}

func (log *defaultLogger) Info(args ...interface{}) {
	log.inner.Info(args...)
}

func (log *defaultLogger) Print(args ...interface{}) {
	log.inner.Print(args...)
}

func (log *defaultLogger) Warn(args ...interface{}) {
	log.inner.Warn(args...)
}

func (log *defaultLogger) Warning(args ...interface{}) {
	log.inner.Warning(args...)
}

func (log *defaultLogger) Error(args ...interface{}) {
	log.inner.Error(args...)
}

func (log *defaultLogger) Fatal(args ...interface{}) {
	log.inner.Fatal(args...)
}

func (log *defaultLogger) Panic(args ...interface{}) {
	log.inner.Panic(args...)
}

func (log *defaultLogger) Traceln(args ...interface{}) {
	log.inner.Traceln(args...)
}

func (log *defaultLogger) Debugln(args ...interface{}) {
	log.inner.Debugln(args...)
}

func (log *defaultLogger) Infoln(args ...interface{}) {
	log.inner.Infoln(args...)
}

func (log *defaultLogger) Println(args ...interface{}) {
	log.inner.Println(args...)
}

func (log *defaultLogger) Warnln(args ...interface{}) {
	log.inner.Warnln(args...)
}

func (log *defaultLogger) Warningln(args ...interface{}) {
	log.inner.Warningln(args...)
}

func (log *defaultLogger) Errorln(args ...interface{}) {
	log.inner.Errorln(args...)
}

func (log *defaultLogger) Fatalln(args ...interface{}) {
	log.inner.Fatalln(args...)
}

func (log *defaultLogger) Panicln(args ...interface{}) {
	log.inner.Panicln(args...)
}

func (log *defaultLogger) WithField(key string, value interface{}) *rlog.Entry {
	return log.inner.WithField(key, value)
}

func (log *defaultLogger) WithFields(fields rlog.Fields) *rlog.Entry {
	return log.inner.WithFields(fields)
}

func (log *defaultLogger) WithError(err error) *rlog.Entry {
	return log.inner.WithError(err)
}

// SetOutput set the output of log to a stream
func (log *defaultLogger) SetOutput(output io.Writer) {
	log.inner.SetOutput(output)
}

// logger is the logger of the driver. Use SetLogger to replace it.
var logger = CreateDefaultLogger()

func init() {
	_ = logger.SetLogLevel("error")
}

// SetLogger set a new logger of TursoLogger interface for goturso
func SetLogger(inLogger *TursoLogger) {
	logger = *inLogger
}

// GetLogger return logger that is not public
func GetLogger() TursoLogger {
	return logger
}

func context2Fields(ctx context.Context) *rlog.Fields {
	var fields = rlog.Fields{}
	if ctx == nil {
		return &fields
	}
	for i := 0; i < len(logKeys); i++ {
		if ctx.Value(logKeys[i]) != nil {
			fields[string(logKeys[i])] = ctx.Value(logKeys[i])
		}
	}
	return &fields
}
