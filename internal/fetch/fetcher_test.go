package fetch

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mshibata/eliwatch/internal/model"
)

func testConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:           5 * time.Second,
		UserAgent:         "eliwatch-test",
		MaxBodyBytes:      1 << 20,
		RequestsPerSecond: 100,
		Burst:             10,
	}
}

func TestRetrieve_NormalizesXML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = fmt.Fprint(w, "\xef\xbb\xbf<Law>\r\n<LawNum>131</LawNum>\r\n</Law>")
	}))
	defer server.Close()

	data, err := New(testConfig()).Retrieve(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if bytes.Contains(data, []byte("\r\n")) || bytes.HasPrefix(data, []byte{0xef, 0xbb, 0xbf}) {
		t.Error("Expected normalized output without BOM or CRLF")
	}
	if !strings.Contains(string(data), "<LawNum>131</LawNum>") {
		t.Errorf("Expected XML content preserved, got %q", data)
	}
}

func TestRetrieve_UnpacksZip(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("325AC0000000131.xml")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	_, _ = f.Write([]byte("<Law><LawTitle>Radio Act</LawTitle></Law>"))
	if err := zw.Close(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(buf.Bytes())
	}))
	defer server.Close()

	data, err := New(testConfig()).Retrieve(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(string(data), "Radio Act") {
		t.Errorf("Expected ZIP member content, got %q", data)
	}
}

func TestRetrieve_ZipWithoutXMLFails(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, _ := zw.Create("readme.txt")
	_, _ = f.Write([]byte("nothing here"))
	_ = zw.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(buf.Bytes())
	}))
	defer server.Close()

	_, err := New(testConfig()).Retrieve(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for ZIP without XML member")
	}
	if !errors.Is(err, ErrRetrieval) {
		t.Errorf("Expected ErrRetrieval kind, got %v", err)
	}
}

func TestRetrieve_TransientThenSuccess(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = fmt.Fprint(w, "<Law/>")
	}))
	defer server.Close()

	origSleep := fetchSleepFunc
	fetchSleepFunc = func(time.Duration) {}
	defer func() { fetchSleepFunc = origSleep }()

	_, err := New(testConfig()).Retrieve(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestRetrieve_ClientErrorFailsImmediately(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	origSleep := fetchSleepFunc
	fetchSleepFunc = func(time.Duration) {}
	defer func() { fetchSleepFunc = origSleep }()

	_, err := New(testConfig()).Retrieve(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for 404")
	}
	if !errors.Is(err, ErrRetrieval) {
		t.Errorf("Expected ErrRetrieval kind, got %v", err)
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected no retry on 404, got %d attempts", attempts.Load())
	}
}

func TestRetrieve_RobotsDisallow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /lawdata\n")
	})
	mux.HandleFunc("/lawdata", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "<Law/>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := testConfig()
	cfg.RespectRobots = true

	_, err := New(cfg).Retrieve(context.Background(), server.URL+"/lawdata")
	if err == nil {
		t.Fatal("Expected error for robots.txt disallowed path")
	}
	if !strings.Contains(err.Error(), "robots.txt") {
		t.Errorf("Expected robots.txt reason, got %v", err)
	}
}
