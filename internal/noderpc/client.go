// client.go - HTTP client for the remote ledger node.
//
// The node speaks JSON-RPC over HTTP POST. Responses the client consumes are opaque
// documents; only the fields the CLI needs are decoded, the rest pass through
// untouched.

package noderpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Client talks to one ledger node.
type Client struct {
	endpoint string
	http     *http.Client
	log      zerolog.Logger
	verbose  bool
	handle   io.Writer
}

// NewClient creates a client for the node at endpoint. When verbose is set, every
// request and response is echoed as JSON to handle.
func NewClient(endpoint string, timeout time.Duration, verbose bool, handle io.Writer, log zerolog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		log:      log.With().Str("component", "noderpc").Logger(),
		verbose:  verbose,
		handle:   handle,
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
	ID      int    `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// call performs one JSON-RPC round trip and decodes the result into out.
func (c *Client) call(ctx context.Context, method string, params any, out any) error {
	reqBody, err := json.Marshal(rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: 1})
	if err != nil {
		return err
	}
	c.printJSON("request", json.RawMessage(reqBody))
	c.log.Debug().Str("method", method).Msg("calling node")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("node request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("node returned status %s", resp.Status)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("failed to decode node response: %w", err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("node error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}
	c.printJSON("response", rpcResp.Result)

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return nil
}

func (c *Client) printJSON(title string, message any) {
	if !c.verbose || c.handle == nil {
		return
	}
	b, err := json.MarshalIndent(message, "", "  ")
	if err != nil {
		return
	}
	fmt.Fprintf(c.handle, "%s:\n%s\n", title, b)
}

// Info requests node status from any node version.
func (c *Client) Info(ctx context.Context) (map[string]any, error) {
	var reply map[string]any
	if err := c.call(ctx, "node_getInfo", nil, &reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// StorageField is one named entry of a contract's storage layout.
type StorageField struct {
	Name string `json:"name"`
	Slot string `json:"slot"`
}

// StorageLayout is the part of a contract's layout document the client interprets.
type StorageLayout struct {
	Fields []StorageField `json:"fields"`
}

// Slot resolves a named storage field to its slot string.
func (l *StorageLayout) Slot(name string) (string, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f.Slot, true
		}
	}
	return "", false
}

// StorageLayout fetches the storage layout of a contract.
func (c *Client) StorageLayout(ctx context.Context, contract string) (*StorageLayout, error) {
	var reply StorageLayout
	params := map[string]string{"contractAddress": contract}
	if err := c.call(ctx, "node_getStorageLayout", params, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// TxEffects is the part of a transaction's effects the client interprets: the note
// hashes the ledger committed for it.
type TxEffects struct {
	NoteHashes []string `json:"noteHashes"`
}

// TxEffects fetches the committed effects of a transaction.
func (c *Client) TxEffects(ctx context.Context, txHash string) (*TxEffects, error) {
	var reply TxEffects
	params := map[string]string{"txHash": txHash}
	if err := c.call(ctx, "node_getTxEffects", params, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
