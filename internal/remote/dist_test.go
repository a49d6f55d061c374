package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
)

const feed = `[
  {"version": "go1.22rc1", "stable": false, "files": [{"filename": "go1.22rc1.linux-arm64.tar.gz", "os": "linux", "arch": "arm64", "kind": "archive"}]},
  {"version": "go1.21.5", "stable": true, "files": []},
  {"version": "", "stable": true},
  {"version": "go1.20.12", "stable": true}
]`

func newFeedServer(t *testing.T, status int, body string, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDistSourceTags(t *testing.T) {
	t.Parallel()

	server := newFeedServer(t, http.StatusOK, feed, nil)
	source := NewDistSource(WithFeedURL(server.URL), WithHTTPClient(server.Client()))

	tags, err := source.Tags(context.Background())
	if err != nil {
		t.Fatalf("Tags error: %v", err)
	}
	want := []string{"go1.22rc1", "go1.21.5", "go1.20.12"}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
}

func TestDistSourceStableOnly(t *testing.T) {
	t.Parallel()

	server := newFeedServer(t, http.StatusOK, feed, nil)
	source := NewDistSource(WithFeedURL(server.URL), WithHTTPClient(server.Client()), WithStableOnly())

	tags, err := source.Tags(context.Background())
	if err != nil {
		t.Fatalf("Tags error: %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"go1.21.5", "go1.20.12"}) {
		t.Fatalf("unexpected tags %v", tags)
	}
}

func TestDistSourceErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http error", status: http.StatusInternalServerError},
		{name: "bad json", status: http.StatusOK, body: "<html>"},
	}
	for _, tc := range cases {
		server := newFeedServer(t, tc.status, tc.body, nil)
		source := NewDistSource(WithFeedURL(server.URL), WithHTTPClient(server.Client()))
		if _, err := source.Tags(context.Background()); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestDistSourceDoesNotCache(t *testing.T) {
	t.Parallel()

	var hits int32
	server := newFeedServer(t, http.StatusOK, `[{"version":"go1.20"}]`, &hits)
	source := NewDistSource(WithFeedURL(server.URL), WithHTTPClient(server.Client()))

	for i := 0; i < 2; i++ {
		if _, err := source.Tags(context.Background()); err != nil {
			t.Fatalf("Tags error: %v", err)
		}
	}
	if atomic.LoadInt32(&hits) != 2 {
		t.Fatalf("expected 2 upstream hits, got %d", hits)
	}
}

func TestDistSourceDefaults(t *testing.T) {
	t.Parallel()

	if got := NewDistSource(WithFeedURL("")).FeedURL(); got != DefaultDistFeed {
		t.Fatalf("unexpected default feed %s", got)
	}
}

var _ TagSource = (*DistSource)(nil)
