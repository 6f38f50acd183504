package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/philipjonsen/cryptopunks/base/stores/gdb/marketmodel"
)

// RecordPayout journals one settled push payment.
func (d *Dao) RecordPayout(ctx context.Context, recipient string, amount uint64) error {
	record := marketmodel.Payout{
		ID:         uuid.NewString(),
		Recipient:  recipient,
		Amount:     amountToDecimal(amount),
		Status:     marketmodel.PayoutStatusSettled,
		CreateTime: time.Now().Unix(),
	}
	if err := d.DB.WithContext(ctx).Create(&record).Error; err != nil {
		return errors.Wrap(err, "failed on insert payout")
	}
	return nil
}
