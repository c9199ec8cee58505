package handler

import (
	"net/http"

	"molecule-ledger/internal/blockchain"
	"molecule-ledger/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// StatusHandler reports API health and blockchain connectivity.
type StatusHandler struct {
	probe   *blockchain.Probe
	version string
}

// NewStatusHandler creates a status handler. probe may be nil when no RPC
// endpoint is configured; the status endpoint then reports disconnected.
func NewStatusHandler(probe *blockchain.Probe, version string) *StatusHandler {
	return &StatusHandler{probe: probe, version: version}
}

// Status handles GET /status.
func (h *StatusHandler) Status(c *gin.Context) {
	st := h.probe.Status(c.Request.Context())

	resp := httpdto.StatusResponse{
		APIStatus:           "online",
		BlockchainConnected: st.Connected,
		CurrentBlock:        st.CurrentBlock,
		Version:             h.version,
	}
	if st.ChainID != nil {
		resp.ChainID = st.ChainID.String()
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(resp))
}
