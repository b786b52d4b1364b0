package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/url"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/hdeploy/internal/domain"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

// ErrChainIDMismatch is returned when the node reports a different chain than expected
var ErrChainIDMismatch = errors.New("chain ID mismatch")

// Connector dials JSON-RPC endpoints with ethclient
type Connector struct {
	log *slog.Logger
}

// NewConnector creates a new network connector
func NewConnector(log *slog.Logger) *Connector {
	return &Connector{
		log: log.With("component", "Connector"),
	}
}

// Connect establishes connection to the network and verifies its chain ID
func (c *Connector) Connect(ctx context.Context, network *domain.NetworkInfo) (usecase.Connection, error) {
	c.log.Debug("dialing", "network", network.Name, "endpoint", endpointHost(network.RPCURL))

	client, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	conn, err := Attach(ctx, client, network.ChainID, client.Close)
	if err != nil {
		return nil, err
	}

	c.log.Debug("connected", "network", network.Name, "chainId", conn.ChainID())
	return conn, nil
}

// Attach verifies an already constructed client and wraps it as a connection.
// If expectedChainID is 0 the node's chain ID is accepted as is.
// closeFn is called when the connection is closed or verification fails; it may be nil.
func Attach(ctx context.Context, client usecase.ChainClient, expectedChainID uint64, closeFn func()) (usecase.Connection, error) {
	conn := &connection{client: client, closeFn: closeFn}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	if expectedChainID != 0 && chainID.Uint64() != expectedChainID {
		conn.Close()
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrChainIDMismatch, expectedChainID, chainID.Uint64())
	}

	conn.chainID = chainID
	return conn, nil
}

type connection struct {
	client  usecase.ChainClient
	chainID *big.Int
	closeFn func()
}

func (c *connection) Client() usecase.ChainClient {
	return c.client
}

func (c *connection) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

func (c *connection) Close() {
	if c.closeFn != nil {
		c.closeFn()
		c.closeFn = nil
	}
}

// endpointHost strips credentials, paths and query strings, which often carry API keys
func endpointHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "ipc"
	}
	return u.Scheme + "://" + u.Host
}

// Ensure the adapter implements the interface
var _ usecase.NetworkConnector = (*Connector)(nil)
