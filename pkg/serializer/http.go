// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/NVIDIA/craftgrid/pkg/defaults"
	"github.com/NVIDIA/craftgrid/pkg/errors"
)

// RespondJSON writes data as a JSON response with the given status code.
// The body is encoded before headers are written so an encoding failure
// never leaves a partial response.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}

const HttpReaderUserAgent = "craftgrid/1.0"

// HttpReaderOption configures an HttpReader.
type HttpReaderOption func(*HttpReader)

// HttpReader fetches documents over HTTP.
type HttpReader struct {
	UserAgent          string
	TotalTimeout       time.Duration
	MaxBytes           int64
	InsecureSkipVerify bool
	Client             *http.Client

	clientSet bool
}

func WithUserAgent(userAgent string) HttpReaderOption {
	return func(r *HttpReader) {
		r.UserAgent = userAgent
	}
}

func WithTotalTimeout(timeout time.Duration) HttpReaderOption {
	return func(r *HttpReader) {
		r.TotalTimeout = timeout
	}
}

// WithMaxBytes caps the response body size. Zero or less disables the cap.
func WithMaxBytes(n int64) HttpReaderOption {
	return func(r *HttpReader) {
		r.MaxBytes = n
	}
}

func WithInsecureSkipVerify(skip bool) HttpReaderOption {
	return func(r *HttpReader) {
		r.InsecureSkipVerify = skip
	}
}

// WithClient uses client as is; transport options are not applied to it.
func WithClient(client *http.Client) HttpReaderOption {
	return func(r *HttpReader) {
		r.Client = client
		r.clientSet = client != nil
	}
}

// NewHttpReader returns a reader with the defaults package timeouts.
func NewHttpReader(options ...HttpReaderOption) *HttpReader {
	r := &HttpReader{
		UserAgent:    HttpReaderUserAgent,
		TotalTimeout: defaults.HTTPClientTimeout,
		MaxBytes:     defaults.MaxSourceBytes,
	}
	for _, opt := range options {
		opt(r)
	}

	if !r.clientSet {
		r.Client = &http.Client{
			Timeout:   r.TotalTimeout,
			Transport: newTransport(r.InsecureSkipVerify),
		}
	}
	return r
}

func newTransport(insecure bool) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: insecure, //nolint:gosec // opt-in for test registries
		},
	}
}

// Read fetches url with a background context.
func (r *HttpReader) Read(url string) ([]byte, error) {
	return r.ReadWithContext(context.Background(), url)
}

// ReadWithContext fetches url and returns the body. Non-200 responses and
// oversized bodies fail with a structured error.
func (r *HttpReader) ReadWithContext(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "url is empty")
	}
	if r.Client == nil {
		return nil, errors.New(errors.ErrCodeInternal, "http client is nil")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("failed to create request for url %s", url), err)
	}
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, fmt.Sprintf("http request canceled for url %s", url), err)
		}
		return nil, errors.Wrap(errors.ErrCodeUnavailable, fmt.Sprintf("http request failed for url %s", url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewWithContext(statusCode(resp.StatusCode),
			fmt.Sprintf("failed to fetch data: status %s", resp.Status), map[string]any{
				"url":    url,
				"status": resp.StatusCode,
			})
	}

	body := io.Reader(resp.Body)
	if r.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, r.MaxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, fmt.Sprintf("failed to read body of %s", url), err)
	}
	if r.MaxBytes > 0 && int64(len(data)) > r.MaxBytes {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "response body too large", map[string]any{
			"url":      url,
			"maxBytes": r.MaxBytes,
		})
	}
	return data, nil
}

func statusCode(status int) errors.ErrorCode {
	switch status {
	case http.StatusNotFound:
		return errors.ErrCodeNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.ErrCodeUnauthorized
	case http.StatusTooManyRequests:
		return errors.ErrCodeRateLimitExceeded
	default:
		return errors.ErrCodeUnavailable
	}
}
