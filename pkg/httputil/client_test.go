package httputil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSharedClients(t *testing.T) {
	if ModelClient() != ModelClient() {
		t.Error("ModelClient must return the same pooled instance")
	}
	if ReportClient() != ReportClient() {
		t.Error("ReportClient must return the same pooled instance")
	}
	if ModelClient() == ReportClient() {
		t.Error("model and report clients must not share a timeout")
	}
}

func TestClientTimeouts(t *testing.T) {
	tests := []struct {
		name   string
		client *http.Client
		want   time.Duration
	}{
		{"model calls", ModelClient(), 15 * time.Second},
		{"report delivery", ReportClient(), 10 * time.Second},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.client.Timeout != tc.want {
				t.Errorf("Timeout = %v, want %v", tc.client.Timeout, tc.want)
			}
		})
	}
}

func TestClientsShareTransport(t *testing.T) {
	// Both clients must draw from one connection pool: a provider host
	// warmed by generation calls stays warm for the next call.
	if ModelClient().Transport != ReportClient().Transport {
		t.Error("clients must share the pooled transport")
	}
}

func TestReadResponseBody(t *testing.T) {
	completion := `{"choices":[{"message":{"role":"assistant","content":"Hello beta, what is this about?"}}]}`

	tests := []struct {
		name    string
		input   string
		maxSize int64
		wantLen int
	}{
		{"chat completion fits", completion, 1024, len(completion)},
		{"runaway body truncated", strings.Repeat("x", 5000), 256, 256},
		{"zero max falls back to default", completion, 0, len(completion)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReadResponseBody(strings.NewReader(tc.input), tc.maxSize)
			if err != nil {
				t.Fatalf("ReadResponseBody: %v", err)
			}
			if len(got) != tc.wantLen {
				t.Errorf("len = %d, want %d", len(got), tc.wantLen)
			}
		})
	}
}

func TestReadErrorBodyCapped(t *testing.T) {
	// A provider returning an HTML error page must not balloon the log line.
	page := strings.Repeat("<p>rate limit exceeded</p>", 10000)

	got, err := ReadErrorBody(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ReadErrorBody: %v", err)
	}
	if len(got) > 64*1024 {
		t.Errorf("error body not capped: %d bytes", len(got))
	}
}

func TestDrainAndClose(t *testing.T) {
	r := &trackingReader{Reader: bytes.NewReader([]byte(`{"status":"received"}`))}

	DrainAndClose(io.NopCloser(r))

	if !r.fullyRead {
		t.Error("body must be fully drained so the connection is reusable")
	}
}

func TestDrainAndCloseNil(t *testing.T) {
	DrainAndClose(nil)
}

func TestConnectionReuseAcrossCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"received"}`))
	}))
	defer srv.Close()

	client := ReportClient()
	for i := 0; i < 5; i++ {
		resp, err := client.Get(srv.URL)
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		DrainAndClose(resp.Body)
	}
}

type trackingReader struct {
	io.Reader
	fullyRead bool
}

func (r *trackingReader) Read(p []byte) (n int, err error) {
	n, err = r.Reader.Read(p)
	if err == io.EOF {
		r.fullyRead = true
	}
	return
}
