package httpdto

// StatusResponse is returned by GET /status
type StatusResponse struct {
	APIStatus           string  `json:"api_status"`
	BlockchainConnected bool    `json:"blockchain_connected"`
	ChainID             string  `json:"chain_id,omitempty"`
	CurrentBlock        *uint64 `json:"current_block"`
	Version             string  `json:"version"`
}
