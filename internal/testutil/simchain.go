// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/trebuchet-org/hdeploy/internal/domain"
)

// SimulatedChainID is the chain ID of go-ethereum's simulated backend
const SimulatedChainID = 1337

// DevMnemonic is the well-known anvil/hardhat development mnemonic
const DevMnemonic = "test test test test test test test test test test test junk"

// DevAccount is the first account of DevMnemonic on the default path
var DevAccount = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

// ReturnsFortyTwo is creation code whose runtime returns 42 for any call.
// Init: PUSH1 0x0a DUP1 PUSH1 0x0b PUSH1 0 CODECOPY PUSH1 0 RETURN
// Runtime: PUSH1 0x2a PUSH1 0 MSTORE PUSH1 0x20 PUSH1 0 RETURN
const ReturnsFortyTwo = "0x600a80600b6000396000f3602a60005260206000f3"

// InvalidOpcode is creation code consisting of the designated INVALID opcode
const InvalidOpcode = "0xfe"

// EmptyABI has no constructor inputs
const EmptyABI = `[]`

// OwnedABI has an (address, uint256) constructor
const OwnedABI = `[{"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"owner","type":"address"},{"name":"supply","type":"uint256"}]}]`

// Logger returns a logger that discards everything
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Artifact builds an in-memory artifact from an ABI JSON string and hex bytecode
func Artifact(t testing.TB, abiJSON, bytecode string, args ...string) *domain.Artifact {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	return &domain.Artifact{
		Name:            "Fixture",
		Path:            "fixture.json",
		ABI:             &parsed,
		Bytecode:        common.FromHex(bytecode),
		ConstructorArgs: args,
	}
}

// SimulatedChain is an in-process chain that mines a block every interval
type SimulatedChain struct {
	Backend *simulated.Backend

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewSimulatedChain starts a simulated chain with the given accounts funded.
// It is stopped automatically when the test finishes.
func NewSimulatedChain(t testing.TB, funded ...common.Address) *SimulatedChain {
	t.Helper()

	balance := new(big.Int).Lsh(big.NewInt(1), 100)
	alloc := types.GenesisAlloc{}
	for _, addr := range funded {
		alloc[addr] = types.Account{Balance: balance}
	}

	chain := &SimulatedChain{
		Backend: simulated.NewBackend(alloc),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go chain.mine(50 * time.Millisecond)

	t.Cleanup(chain.Close)
	return chain
}

func (c *SimulatedChain) mine(interval time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.Backend.Commit()
		}
	}
}

// Close stops mining and shuts the backend down
func (c *SimulatedChain) Close() {
	c.once.Do(func() {
		close(c.stop)
		<-c.done
		_ = c.Backend.Close()
	})
}

// RPCStub is a JSON-RPC server answering eth_chainId, counting every request
type RPCStub struct {
	Server   *httptest.Server
	ChainID  uint64
	Requests atomic.Int64
}

// NewRPCStub starts a stub node reporting chainID
func NewRPCStub(t testing.TB, chainID uint64) *RPCStub {
	t.Helper()
	stub := &RPCStub{ChainID: chainID}
	stub.Server = httptest.NewServer(http.HandlerFunc(stub.handle))
	t.Cleanup(stub.Server.Close)
	return stub
}

// URL returns the stub's endpoint
func (s *RPCStub) URL() string {
	return s.Server.URL
}

func (s *RPCStub) handle(w http.ResponseWriter, r *http.Request) {
	s.Requests.Add(1)

	var req struct {
		ID     json.RawMessage `json:"id"`
		Method string          `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := map[string]any{
		"jsonrpc": "2.0",
		"id":      req.ID,
	}
	switch req.Method {
	case "eth_chainId":
		resp["result"] = "0x" + new(big.Int).SetUint64(s.ChainID).Text(16)
	case "eth_getBalance":
		resp["result"] = "0x0"
	default:
		resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// UnreachableURL returns the address of a server that has already been shut down
func UnreachableURL(t testing.TB) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

// Ctx returns a context bounded by timeout and cancelled at test end
func Ctx(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
