package backend

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PromiseGameFi/Passkey-WallletAuth/pkg/helpers"
)

// EVMClient implements Querier and Broadcaster over an EVM node's
// JSON-RPC endpoint (eth_* methods).
type EVMClient struct {
	rpcURL     string
	httpClient *http.Client
	mu         sync.RWMutex
	connected  bool
	requestID  atomic.Uint64
}

// Config holds EVM client configuration.
type Config struct {
	RPCURL  string        `yaml:"rpc_url"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// NewEVMClient creates a client for the given endpoint.
func NewEVMClient(cfg *Config) *EVMClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &EVMClient{
		rpcURL: cfg.RPCURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Connect tests the connection to the node.
func (c *EVMClient) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.call(ctx, "eth_blockNumber", []interface{}{}); err != nil {
		return fmt.Errorf("%w: %v", ErrNotConnected, err)
	}

	c.connected = true
	return nil
}

// Close marks the client disconnected.
func (c *EVMClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	return nil
}

// IsConnected returns true if Connect succeeded.
func (c *EVMClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// ChainID returns the node's chain ID (eth_chainId).
func (c *EVMClient) ChainID(ctx context.Context) (uint64, error) {
	result, err := c.call(ctx, "eth_chainId", []interface{}{})
	if err != nil {
		return 0, err
	}

	var hexChainID string
	if err := json.Unmarshal(result, &hexChainID); err != nil {
		return 0, err
	}

	return helpers.HexToUint64(hexChainID), nil
}

// NativeBalance returns the wei balance of an address (eth_getBalance).
func (c *EVMClient) NativeBalance(ctx context.Context, address string) (*big.Int, error) {
	result, err := c.call(ctx, "eth_getBalance", []interface{}{address, "latest"})
	if err != nil {
		return nil, err
	}

	var hexBalance string
	if err := json.Unmarshal(result, &hexBalance); err != nil {
		return nil, err
	}

	return helpers.HexToBigInt(hexBalance), nil
}

// Call executes a read-only contract call (eth_call).
func (c *EVMClient) Call(ctx context.Context, contract string, data []byte) ([]byte, error) {
	callObj := map[string]interface{}{
		"to":   contract,
		"data": helpers.BytesToHex(data),
	}

	result, err := c.call(ctx, "eth_call", []interface{}{callObj, "latest"})
	if err != nil {
		return nil, err
	}

	var hexResult string
	if err := json.Unmarshal(result, &hexResult); err != nil {
		return nil, err
	}

	return hex.DecodeString(strings.TrimPrefix(hexResult, "0x"))
}

// PendingNonce returns the next nonce for an address, counting pending
// transactions (eth_getTransactionCount with "pending").
func (c *EVMClient) PendingNonce(ctx context.Context, address string) (uint64, error) {
	result, err := c.call(ctx, "eth_getTransactionCount", []interface{}{address, "pending"})
	if err != nil {
		return 0, err
	}

	var hexNonce string
	if err := json.Unmarshal(result, &hexNonce); err != nil {
		return 0, err
	}

	return helpers.HexToUint64(hexNonce), nil
}

// GasPrice returns the current gas price in wei (eth_gasPrice).
func (c *EVMClient) GasPrice(ctx context.Context) (*big.Int, error) {
	result, err := c.call(ctx, "eth_gasPrice", []interface{}{})
	if err != nil {
		return nil, err
	}

	var hexGasPrice string
	if err := json.Unmarshal(result, &hexGasPrice); err != nil {
		return nil, err
	}

	return helpers.HexToBigInt(hexGasPrice), nil
}

// EstimateGas estimates gas for a transaction (eth_estimateGas).
func (c *EVMClient) EstimateGas(ctx context.Context, from, to string, value *big.Int, data []byte) (uint64, error) {
	callObj := map[string]interface{}{
		"from": from,
		"to":   to,
	}

	if value != nil && value.Sign() > 0 {
		callObj["value"] = helpers.BigIntToHex(value)
	}

	if len(data) > 0 {
		callObj["data"] = helpers.BytesToHex(data)
	}

	result, err := c.call(ctx, "eth_estimateGas", []interface{}{callObj})
	if err != nil {
		return 0, err
	}

	var hexGas string
	if err := json.Unmarshal(result, &hexGas); err != nil {
		return 0, err
	}

	return helpers.HexToUint64(hexGas), nil
}

// Broadcast submits a signed raw transaction (eth_sendRawTransaction).
func (c *EVMClient) Broadcast(ctx context.Context, rawTxHex string) (string, error) {
	if !strings.HasPrefix(rawTxHex, "0x") {
		rawTxHex = "0x" + rawTxHex
	}

	result, err := c.call(ctx, "eth_sendRawTransaction", []interface{}{rawTxHex})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBroadcastFailed, err)
	}

	var txHash string
	if err := json.Unmarshal(result, &txHash); err != nil {
		return "", err
	}

	return txHash, nil
}

func (c *EVMClient) call(ctx context.Context, method string, params []interface{}) (json.RawMessage, error) {
	id := c.requestID.Add(1)

	request := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
		"params":  params,
	}

	data, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.rpcURL, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var response struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      uint64          `json:"id"`
		Result  json.RawMessage `json:"result"`
		Error   *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if response.Error != nil {
		return nil, fmt.Errorf("RPC error %d: %s", response.Error.Code, response.Error.Message)
	}

	return response.Result, nil
}

// Ensure EVMClient implements both collaborator interfaces.
var (
	_ Querier     = (*EVMClient)(nil)
	_ Broadcaster = (*EVMClient)(nil)
)
