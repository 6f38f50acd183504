// Package treasury settles push payments out of the ledger by
// journaling them to the payout table. A failed journal write is
// reported back to the ledger, which keeps the funds in the caller's
// balance or bid escrow.
package treasury

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/philipjonsen/cryptopunks/base/logger/xzap"
	"github.com/philipjonsen/cryptopunks/src/dao"
)

type Treasury struct {
	ctx context.Context
	dao *dao.Dao
}

func New(ctx context.Context, d *dao.Dao) *Treasury {
	return &Treasury{ctx: ctx, dao: d}
}

// Transfer implements market.Treasury.
func (t *Treasury) Transfer(to common.Address, amount uint64) error {
	if err := t.dao.RecordPayout(t.ctx, to.Hex(), amount); err != nil {
		xzap.WithContext(t.ctx).Error("payout rejected",
			zap.String("recipient", to.Hex()),
			zap.Uint64("amount", amount),
			zap.Error(err))
		return errors.Wrap(err, "failed on settle payout")
	}
	xzap.WithContext(t.ctx).Info("payout settled",
		zap.String("recipient", to.Hex()),
		zap.Uint64("amount", amount))
	return nil
}
