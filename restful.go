// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// errorBodyLimit caps how much of a failed response body ends up in the
// error message.
const errorBodyLimit = 512

var tursoTransport = &http.Transport{
	MaxIdleConns:    10,
	IdleConnTimeout: 30 * time.Minute,
}

// tursoRestful is the HTTP layer of the driver. FuncPostPipeline is swapped
// out in tests.
type tursoRestful struct {
	Protocol string
	Host     string
	Port     int

	Client *http.Client
	Token  string

	FuncPostPipeline func(ctx context.Context, sr *tursoRestful, baseURL string, body []byte, requestID uuid.UUID) (*PipelineResponse, error)
}

func (sr *tursoRestful) baseURL() string {
	return fmt.Sprintf("%s://%s:%d", sr.Protocol, sr.Host, sr.Port)
}

// postPipeline sends one pipeline batch and decodes the response body.
// Every failure mode, transport error, non-2xx status or an undecodable
// body, surfaces as a TursoError with the pipeline failure code; there is
// no retry.
func postPipeline(ctx context.Context, sr *tursoRestful, baseURL string, body []byte, requestID uuid.UUID) (*PipelineResponse, error) {
	fullURL := baseURL + pipelinePath
	logger.WithContext(ctx).Debugf("fullURL: %v", fullURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(body))
	if err != nil {
		return nil, &TursoError{
			Number:      ErrCodePipelineFailure,
			Message:     errMsgPipelineTransportFailure,
			MessageArgs: []interface{}{err},
		}
	}
	req.Header.Set("Content-Type", headerContentTypeApplicationJSON)
	req.Header.Set("accept", headerAcceptTypeApplicationJSON)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(headerRequestIDKey, requestID.String())
	if sr.Token != "" {
		req.Header.Set(headerAuthorizationKey, fmt.Sprintf(headerBearerToken, sr.Token))
	}
	resp, err := sr.Client.Do(req)
	if err != nil {
		return nil, &TursoError{
			Number:      ErrCodePipelineFailure,
			Message:     errMsgPipelineTransportFailure,
			MessageArgs: []interface{}{err},
		}
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		b, readErr := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		if readErr != nil {
			logger.WithContext(ctx).Warnf("failed to read error response body: %v", readErr)
		}
		return nil, &TursoError{
			Number:      ErrCodePipelineFailure,
			HTTPCode:    resp.StatusCode,
			Message:     errMsgPipelineHTTPFailure,
			MessageArgs: []interface{}{resp.StatusCode, string(b)},
		}
	}
	var respd PipelineResponse
	if err = json.NewDecoder(resp.Body).Decode(&respd); err != nil {
		return nil, &TursoError{
			Number:      ErrCodePipelineFailure,
			Message:     errMsgPipelineDecodeFailure,
			MessageArgs: []interface{}{err},
		}
	}
	return &respd, nil
}
