package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type payload struct {
	Name string `json:"name"`
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestCall_SucceedsAfterTransientFailures(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"name":"ok"}`))
	}))
	defer srv.Close()

	call := NewCall[payload](NewClient(srv.URL), WithRetries(3))
	call.Start(context.Background(), Request{Path: "/item"})
	call.Wait()

	res := call.Cell().Get()
	if res.Err != nil || res.Loading {
		t.Fatalf("expected settled success, got %+v", res)
	}
	if res.Data.Name != "ok" {
		t.Fatalf("expected decoded payload, got %+v", res.Data)
	}
	if call.Attempts() != 3 {
		t.Fatalf("expected 3 attempts, got %d", call.Attempts())
	}
}

func TestCall_ExhaustedRetriesCommitFinalError(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	call := NewCall[payload](NewClient(srv.URL), WithRetries(2))
	call.Start(context.Background(), Request{Path: "/item"})
	call.Wait()

	res := call.Cell().Get()
	if res.Err == nil {
		t.Fatalf("expected final error, got %+v", res)
	}
	if res.Loading {
		t.Fatalf("expected loading cleared after exhaustion")
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected exactly 2 attempts on the wire, got %d", got)
	}
	if call.Attempts() != 2 {
		t.Fatalf("expected attempt count 2, got %d", call.Attempts())
	}
}

func TestCall_StopBeforeResponseLeavesCellUnchanged(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{"name":"late"}`))
	}))
	defer srv.Close()

	call := NewCall[payload](NewClient(srv.URL))
	call.Start(context.Background(), Request{Path: "/slow"})

	before := call.Cell().Get()
	if !before.Loading {
		t.Fatalf("expected loading before stop, got %+v", before)
	}

	call.Stop()
	close(release)
	call.Wait()

	after := call.Cell().Get()
	if after != before {
		t.Fatalf("expected cell unchanged after late response, got %+v", after)
	}
}

func TestCall_NewTargetResetsAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"name":"ok"}`))
	}))
	defer srv.Close()

	call := NewCall[payload](NewClient(srv.URL), WithRetries(3))
	call.Start(context.Background(), Request{Path: "/bad"})
	call.Wait()
	if call.Attempts() != 3 {
		t.Fatalf("expected exhausted attempts for first target, got %d", call.Attempts())
	}

	call.Start(context.Background(), Request{Path: "/good"})
	call.Wait()
	waitFor(t, func() bool { return !call.Cell().Get().Loading })
	if call.Attempts() != 1 {
		t.Fatalf("expected counter reset for new target, got %d", call.Attempts())
	}
	if got := call.Cell().Get().Data.Name; got != "ok" {
		t.Fatalf("expected second target result, got %q", got)
	}
}

func TestClient_GETBodyEncodesAsQuery(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithHeader("X-API-Key", "k"))
	call := NewCall[map[string]any](client)
	call.Start(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/search",
		Body: map[string]any{
			"q":     "weather",
			"page":  2,
			"exact": true,
		},
	})
	call.Wait()

	want := "exact=true&page=2&q=weather"
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
}
