package marketmodel

import "github.com/shopspring/decimal"

// Activity is one committed ledger event persisted for external
// indexing. The database is never the source of ledger truth.
type Activity struct {
	ID           string          `gorm:"column:id;primaryKey"`
	AssetID      int64           `gorm:"column:asset_id;index"`
	ActivityType string          `gorm:"column:activity_type;index"`
	Maker        string          `gorm:"column:maker;index"`
	Taker        string          `gorm:"column:taker;index"`
	Price        decimal.Decimal `gorm:"column:price;type:decimal(30,0)"`
	EventTime    int64           `gorm:"column:event_time;index"`
}

func (Activity) TableName() string {
	return "pm_activities"
}
