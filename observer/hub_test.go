package observer

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/milk9111/townfolk/ecs/system"
)

var quietLogger = log.New(io.Discard, "", 0)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, want %d", h.Clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readSnapshot(t *testing.T, conn *websocket.Conn) system.Snapshot {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var snap system.Snapshot
	if err := json.Unmarshal(msg, &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return snap
}

func TestHubBroadcastsToEveryClient(t *testing.T) {
	h := NewHub(quietLogger)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()
	defer h.Close()

	a, b := dial(t, srv), dial(t, srv)
	defer a.Close()
	defer b.Close()
	waitClients(t, h, 2)

	snap := system.Snapshot{Frame: 7, Phase: "conversing", Scene: "town_of_endgame",
		Dialogue: &system.DialogueSnapshot{Speaker: "Mayor Uptime", Text: "Wel", TotalLines: 3}}
	if err := h.Publish(snap); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	for _, conn := range []*websocket.Conn{a, b} {
		got := readSnapshot(t, conn)
		if got.Frame != 7 || got.Dialogue == nil || got.Dialogue.Text != "Wel" {
			t.Fatalf("got %+v", got)
		}
	}
}

func TestHubSendsLatestOnConnect(t *testing.T) {
	h := NewHub(quietLogger)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()
	defer h.Close()

	_ = h.Publish(system.Snapshot{Frame: 3, Phase: "exploring"})
	conn := dial(t, srv)
	defer conn.Close()
	if got := readSnapshot(t, conn); got.Frame != 3 {
		t.Fatalf("frame = %d, want 3", got.Frame)
	}
}

func TestHubDropsClosedClients(t *testing.T) {
	h := NewHub(quietLogger)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()
	defer h.Close()

	conn := dial(t, srv)
	waitClients(t, h, 1)
	conn.Close()
	waitClients(t, h, 0)
}

func TestSnapshotHandler(t *testing.T) {
	cases := []struct {
		name    string
		publish bool
		remote  string
		method  string
		want    int
	}{
		{"no snapshot yet", false, "127.0.0.1:5000", http.MethodGet, http.StatusNoContent},
		{"latest", true, "127.0.0.1:5000", http.MethodGet, http.StatusOK},
		{"ipv6 loopback", true, "[::1]:5000", http.MethodGet, http.StatusOK},
		{"remote refused", true, "10.1.2.3:5000", http.MethodGet, http.StatusForbidden},
		{"post refused", true, "127.0.0.1:5000", http.MethodPost, http.StatusMethodNotAllowed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := NewHub(quietLogger)
			if c.publish {
				_ = h.Publish(system.Snapshot{Frame: 1, Phase: "exploring"})
			}
			req := httptest.NewRequest(c.method, "/snapshot", nil)
			req.RemoteAddr = c.remote
			rec := httptest.NewRecorder()
			h.SnapshotHandler()(rec, req)
			if rec.Code != c.want {
				t.Fatalf("status = %d, want %d", rec.Code, c.want)
			}
			if c.want == http.StatusOK && !strings.Contains(rec.Body.String(), `"phase":"exploring"`) {
				t.Fatalf("body = %s", rec.Body.String())
			}
		})
	}
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	h := NewHub(quietLogger)
	h.Close()
	if err := h.Publish(system.Snapshot{Frame: 1}); err != nil {
		t.Fatalf("Publish after close: %v", err)
	}
	if h.Clients() != 0 {
		t.Fatalf("clients after close")
	}
}
