package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestReloadHubBroadcast(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := newServeMetrics(reg)
	if err != nil {
		t.Fatal(err)
	}
	hub := newReloadHub(discardLogger())
	hub.onChange = metrics.setClients
	srv := httptest.NewServer(newMux(&bundle{dir: t.TempDir()}, hub, reg))
	defer srv.Close()
	defer hub.closeAll()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/livereload"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	defer conn.Close()
	waitFor(t, "the page to register", func() bool { return hub.clients() == 1 })

	if sent := hub.broadcast(reloadMessage); sent != 1 {
		t.Fatalf("broadcast reached %d pages, want 1", sent)
	}
	metrics.addReloads(1)
	metrics.recordBuild(300*time.Millisecond, nil)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if kind != websocket.TextMessage || string(msg) != reloadMessage {
		t.Fatalf("got message %d %q", kind, msg)
	}

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	for _, want := range []string{
		`reveal_serve_builds_total{result="ok"} 1`,
		"reveal_serve_livereload_clients 1",
		"reveal_serve_reloads_sent_total 1",
		"reveal_serve_build_duration_seconds_count 1",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %q:\n%s", want, body)
		}
	}

	conn.Close()
	waitFor(t, "the page to drop", func() bool { return hub.clients() == 0 })
	if sent := hub.broadcast(reloadMessage); sent != 0 {
		t.Fatalf("broadcast reached %d pages after disconnect", sent)
	}
}

func TestServeMetricsNilSafe(t *testing.T) {
	var m *serveMetrics
	m.recordBuild(time.Second, io.EOF)
	m.setClients(3)
	m.addReloads(1)
}

func TestServeMetricsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := newServeMetrics(reg); err != nil {
		t.Fatal(err)
	}
	if _, err := newServeMetrics(reg); err == nil {
		t.Fatal("expected a registration error")
	}
}

func TestReloadHubDropsStalledPage(t *testing.T) {
	hub := newReloadHub(discardLogger())
	hub.writeWait = 100 * time.Millisecond
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.closeAll()

	// The client never reads, so a message larger than the socket buffers
	// stalls the write until its deadline.
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	defer conn.Close()
	waitFor(t, "the page to register", func() bool { return hub.clients() == 1 })

	done := make(chan int, 1)
	go func() { done <- hub.broadcast(strings.Repeat("x", 64<<20)) }()

	select {
	case sent := <-done:
		if sent != 0 {
			t.Fatalf("broadcast reached %d pages, want 0", sent)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("broadcast did not give up on the stalled page")
	}
	if n := hub.clients(); n != 0 {
		t.Fatalf("stalled page still registered: %d clients", n)
	}
}
