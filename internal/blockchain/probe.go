// Package blockchain reports connectivity to an Ethereum JSON-RPC endpoint.
// It is a read-only health probe: the backend never submits transactions.
package blockchain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/ethclient"
)

// Status is a snapshot of the node connection.
type Status struct {
	Connected    bool
	ChainID      *big.Int
	CurrentBlock *uint64
}

// Probe wraps an Ethereum RPC client. A nil Probe is valid and always
// reports disconnected, so callers need no configuration checks.
type Probe struct {
	client *ethclient.Client
}

// Dial connects to the JSON-RPC endpoint at rawurl.
func Dial(ctx context.Context, rawurl string) (*Probe, error) {
	client, err := ethclient.DialContext(ctx, rawurl)
	if err != nil {
		return nil, err
	}
	return &Probe{client: client}, nil
}

// Status queries the node for its chain id and latest block number.
// Failures degrade to a disconnected status rather than an error.
func (p *Probe) Status(ctx context.Context) Status {
	if p == nil || p.client == nil {
		return Status{}
	}

	chainID, err := p.client.ChainID(ctx)
	if err != nil {
		return Status{}
	}

	status := Status{Connected: true, ChainID: chainID}
	if block, err := p.client.BlockNumber(ctx); err == nil {
		status.CurrentBlock = &block
	}
	return status
}

// Close releases the underlying RPC connection.
func (p *Probe) Close() {
	if p != nil && p.client != nil {
		p.client.Close()
	}
}
