package backend

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
)

// rpcServer returns an httptest server answering JSON-RPC calls from the
// given method -> result map. Unknown methods get a JSON-RPC error.
func rpcServer(t *testing.T, results map[string]interface{}, calls map[string]int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     uint64        `json:"id"`
			Method string        `json:"method"`
			Params []interface{} `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}

		if calls != nil {
			calls[req.Method]++
		}

		w.Header().Set("Content-Type", "application/json")

		result, ok := results[req.Method]
		if !ok {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"jsonrpc": "2.0",
				"id":      req.ID,
				"error":   map[string]interface{}{"code": -32601, "message": "method not found"},
			})
			return
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		})
	}))
}

func TestNativeBalance(t *testing.T) {
	server := rpcServer(t, map[string]interface{}{
		"eth_getBalance": "0xde0b6b3a7640000", // 1 ETH in wei
	}, nil)
	defer server.Close()

	client := NewEVMClient(&Config{RPCURL: server.URL})

	balance, err := client.NativeBalance(context.Background(), "0x1111111111111111111111111111111111111111")
	if err != nil {
		t.Fatalf("NativeBalance() error: %v", err)
	}

	want, _ := new(big.Int).SetString("1000000000000000000", 10)
	if balance.Cmp(want) != 0 {
		t.Errorf("balance = %s, want %s", balance, want)
	}
}

func TestCall(t *testing.T) {
	server := rpcServer(t, map[string]interface{}{
		"eth_call": "0x00000000000000000000000000000000000000000000000000000000000001f4",
	}, nil)
	defer server.Close()

	client := NewEVMClient(&Config{RPCURL: server.URL})

	result, err := client.Call(context.Background(), "0x2222222222222222222222222222222222222222", []byte{0x70, 0xa0, 0x82, 0x31})
	if err != nil {
		t.Fatalf("Call() error: %v", err)
	}

	if len(result) != 32 {
		t.Fatalf("result length = %d, want 32", len(result))
	}
	if got := new(big.Int).SetBytes(result); got.Cmp(big.NewInt(500)) != 0 {
		t.Errorf("decoded result = %s, want 500", got)
	}
}

func TestPendingNonceAndGasPrice(t *testing.T) {
	server := rpcServer(t, map[string]interface{}{
		"eth_getTransactionCount": "0x2a",
		"eth_gasPrice":            "0x3b9aca00", // 1 gwei
	}, nil)
	defer server.Close()

	client := NewEVMClient(&Config{RPCURL: server.URL})
	ctx := context.Background()

	nonce, err := client.PendingNonce(ctx, "0x1111111111111111111111111111111111111111")
	if err != nil {
		t.Fatalf("PendingNonce() error: %v", err)
	}
	if nonce != 42 {
		t.Errorf("nonce = %d, want 42", nonce)
	}

	gasPrice, err := client.GasPrice(ctx)
	if err != nil {
		t.Fatalf("GasPrice() error: %v", err)
	}
	if gasPrice.Cmp(big.NewInt(1000000000)) != 0 {
		t.Errorf("gasPrice = %s, want 1000000000", gasPrice)
	}
}

func TestBroadcast(t *testing.T) {
	calls := make(map[string]int)
	server := rpcServer(t, map[string]interface{}{
		"eth_sendRawTransaction": "0xabc123",
	}, calls)
	defer server.Close()

	client := NewEVMClient(&Config{RPCURL: server.URL})

	hash, err := client.Broadcast(context.Background(), "f86b808504a817c800825208")
	if err != nil {
		t.Fatalf("Broadcast() error: %v", err)
	}
	if hash != "0xabc123" {
		t.Errorf("hash = %s, want 0xabc123", hash)
	}
	if calls["eth_sendRawTransaction"] != 1 {
		t.Errorf("broadcast calls = %d, want 1", calls["eth_sendRawTransaction"])
	}
}

func TestBroadcastRPCError(t *testing.T) {
	server := rpcServer(t, nil, nil) // every method errors
	defer server.Close()

	client := NewEVMClient(&Config{RPCURL: server.URL})

	_, err := client.Broadcast(context.Background(), "0xdeadbeef")
	if !errors.Is(err, ErrBroadcastFailed) {
		t.Errorf("error = %v, want ErrBroadcastFailed", err)
	}
}

func TestConnect(t *testing.T) {
	server := rpcServer(t, map[string]interface{}{
		"eth_blockNumber": "0x10",
	}, nil)
	defer server.Close()

	client := NewEVMClient(&Config{RPCURL: server.URL})

	if client.IsConnected() {
		t.Error("client should start disconnected")
	}
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if !client.IsConnected() {
		t.Error("client should be connected after Connect")
	}
}

func TestConnectFailure(t *testing.T) {
	client := NewEVMClient(&Config{RPCURL: "http://127.0.0.1:1"})

	err := client.Connect(context.Background())
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("error = %v, want ErrNotConnected", err)
	}
}

func TestChainID(t *testing.T) {
	server := rpcServer(t, map[string]interface{}{
		"eth_chainId": "0xaa36a7", // Sepolia
	}, nil)
	defer server.Close()

	client := NewEVMClient(&Config{RPCURL: server.URL})

	chainID, err := client.ChainID(context.Background())
	if err != nil {
		t.Fatalf("ChainID() error: %v", err)
	}
	if chainID != 11155111 {
		t.Errorf("chainID = %d, want 11155111", chainID)
	}
}
