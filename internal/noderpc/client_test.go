package noderpc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, false, io.Discard, zerolog.Nop())
}

func TestInfo(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Method != "node_getInfo" {
			t.Errorf("unexpected method %q", req.Method)
		}
		io.WriteString(w, `{"jsonrpc":"2.0","id":1,"result":{"chainId":31337,"version":"0.9.1"}}`)
	})

	info, err := client.Info(context.Background())
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info["version"] != "0.9.1" {
		t.Errorf("unexpected version %v", info["version"])
	}
}

func TestStorageLayout(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "node_getStorageLayout") {
			t.Errorf("unexpected request: %s", body)
		}
		io.WriteString(w, `{"jsonrpc":"2.0","id":1,"result":{"fields":[{"name":"balances","slot":"0x01"},{"name":"owner","slot":"0x02"}]}}`)
	})

	layout, err := client.StorageLayout(context.Background(), "0x1234")
	if err != nil {
		t.Fatalf("StorageLayout failed: %v", err)
	}
	slot, ok := layout.Slot("balances")
	if !ok || slot != "0x01" {
		t.Errorf("expected balances at 0x01, got %q (%v)", slot, ok)
	}
	if _, ok := layout.Slot("missing"); ok {
		t.Errorf("unknown field should not resolve")
	}
}

func TestTxEffects(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"jsonrpc":"2.0","id":1,"result":{"noteHashes":["0x0a","0x0b"]}}`)
	})

	effects, err := client.TxEffects(context.Background(), "0xffff")
	if err != nil {
		t.Fatalf("TxEffects failed: %v", err)
	}
	if len(effects.NoteHashes) != 2 || effects.NoteHashes[1] != "0x0b" {
		t.Errorf("unexpected note hashes %v", effects.NoteHashes)
	}
}

func TestNodeError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"method not found"}}`)
	})

	if _, err := client.Info(context.Background()); err == nil {
		t.Fatalf("node error should propagate")
	} else if !strings.Contains(err.Error(), "method not found") {
		t.Errorf("error should carry the node message, got %v", err)
	}
}

func TestHTTPError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, err := client.Info(context.Background()); err == nil {
		t.Fatalf("non-200 response should fail")
	}
}
