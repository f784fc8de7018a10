// Package httputil is the shared outbound HTTP layer for the gateway's two
// call shapes: chat-completion requests to model providers and final-report
// delivery to the collector. It provides pooled singleton clients and
// bounded response-body handling, plus the admission semaphore used by the
// turn limiter.
package httputil

import (
	"io"
	"net"
	"net/http"
	"sync"
	"time"
)

// MaxResponseSize bounds any body read from an outbound call. A chat
// completion is a few KB; 2MB absorbs verbose provider errors without
// letting a broken endpoint exhaust memory.
const MaxResponseSize = 2 * 1024 * 1024

// Per-purpose client timeouts. The real deadlines are context-based (12s per
// generation attempt, 10s per report delivery); the client timeout only
// catches a body read that outlives its context.
const (
	modelClientTimeout  = 15 * time.Second
	reportClientTimeout = 10 * time.Second
)

// One pooled transport for all outbound traffic. The gateway talks to a
// handful of hosts (one or two model providers, one collector), so a small
// per-host idle pool goes a long way.
var sharedTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ForceAttemptHTTP2:     true,
	MaxIdleConns:          64,
	MaxIdleConnsPerHost:   8,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
}

var (
	modelClient  *http.Client
	reportClient *http.Client
	clientOnce   sync.Once
)

func initClients() {
	modelClient = &http.Client{
		Timeout:   modelClientTimeout,
		Transport: sharedTransport,
	}
	reportClient = &http.Client{
		Timeout:   reportClientTimeout,
		Transport: sharedTransport,
	}
}

// ModelClient returns the shared client for chat-completion calls. Callers
// set their own per-attempt context deadline; the client timeout is wider.
func ModelClient() *http.Client {
	clientOnce.Do(initClients)
	return modelClient
}

// ReportClient returns the shared client for final-report delivery.
func ReportClient() *http.Client {
	clientOnce.Do(initClients)
	return reportClient
}

// ReadResponseBody reads a response body under a size cap. maxSize <= 0
// falls back to MaxResponseSize.
func ReadResponseBody(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = MaxResponseSize
	}
	return io.ReadAll(io.LimitReader(r, maxSize))
}

// ReadErrorBody reads an error response under a tight cap; provider error
// payloads are a sentence, not a document.
func ReadErrorBody(r io.Reader) ([]byte, error) {
	const maxErrorSize = 64 * 1024
	return io.ReadAll(io.LimitReader(r, maxErrorSize))
}

// DrainAndClose drains and closes a response body so the underlying
// connection returns to the pool.
func DrainAndClose(body io.ReadCloser) {
	if body != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(body, MaxResponseSize))
		_ = body.Close()
	}
}
