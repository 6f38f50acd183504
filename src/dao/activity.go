package dao

import (
	"context"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/philipjonsen/cryptopunks/base/stores/gdb/marketmodel"
	"github.com/philipjonsen/cryptopunks/src/market"
)

func amountToDecimal(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

// AddActivity persists one committed ledger event.
func (d *Dao) AddActivity(ctx context.Context, evt market.Event) error {
	record := marketmodel.Activity{
		ID:           uuid.NewString(),
		AssetID:      int64(evt.AssetID),
		ActivityType: evt.Type,
		Maker:        evt.From.Hex(),
		Taker:        evt.To.Hex(),
		Price:        amountToDecimal(evt.Value),
		EventTime:    time.Now().Unix(),
	}
	if err := d.DB.WithContext(ctx).Create(&record).Error; err != nil {
		return errors.Wrap(err, "failed on insert activity")
	}
	return nil
}

// QueryActivities returns a page of persisted events, newest first.
// assetID < 0 means no asset filter; empty user/eventTypes mean no
// filter on those columns.
func (d *Dao) QueryActivities(ctx context.Context, assetID int64, user string, eventTypes []string, page, pageSize int) ([]marketmodel.Activity, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	tx := d.DB.WithContext(ctx).Model(&marketmodel.Activity{})
	if assetID >= 0 {
		tx = tx.Where("asset_id = ?", assetID)
	}
	if user != "" {
		tx = tx.Where("maker = ? OR taker = ?", user, user)
	}
	if len(eventTypes) > 0 {
		tx = tx.Where("activity_type IN ?", eventTypes)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on count activities")
	}

	var activities []marketmodel.Activity
	err := tx.Order("event_time DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&activities).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed on query activities")
	}
	return activities, total, nil
}
