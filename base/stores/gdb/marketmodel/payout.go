package marketmodel

import "github.com/shopspring/decimal"

const (
	PayoutStatusSettled = 1
)

// Payout is one completed push payment out of the ledger.
type Payout struct {
	ID         string          `gorm:"column:id;primaryKey"`
	Recipient  string          `gorm:"column:recipient;index"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(30,0)"`
	Status     int             `gorm:"column:status"`
	CreateTime int64           `gorm:"column:create_time"`
}

func (Payout) TableName() string {
	return "pm_payouts"
}
