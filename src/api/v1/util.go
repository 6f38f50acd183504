package v1

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/philipjonsen/cryptopunks/base/errcode"
	"github.com/philipjonsen/cryptopunks/base/xhttp"
	"github.com/philipjonsen/cryptopunks/src/market"
)

// parseAssetIndex reads the :index path param. Range checking beyond
// the integer width belongs to the ledger.
func parseAssetIndex(c *gin.Context) (uint32, bool) {
	raw := c.Param("index")
	idx, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		xhttp.Error(c, errcode.ErrInvalidParams)
		return 0, false
	}
	return uint32(idx), true
}

// fail maps ledger failures onto API error codes.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, market.ErrAccessDenied):
		xhttp.Error(c, errcode.ErrAccessDenied)
	case errors.Is(err, market.ErrPhaseViolation):
		xhttp.Error(c, errcode.ErrPhaseViolation)
	case errors.Is(err, market.ErrNotFound):
		xhttp.Error(c, errcode.ErrNotFound)
	case errors.Is(err, market.ErrInvariantViolation):
		xhttp.Error(c, errcode.NewErr(errcode.CodeInvariant, err.Error(), 400))
	case errors.Is(err, market.ErrTransferFailed):
		xhttp.Error(c, errcode.ErrTransferFailed)
	default:
		xhttp.Error(c, errcode.ErrUnexpected)
	}
}

func mustAddr(s string) common.Address {
	return common.HexToAddress(s)
}
