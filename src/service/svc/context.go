package svc

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/kv"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/threading"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/philipjonsen/cryptopunks/base/logger/xzap"
	"github.com/philipjonsen/cryptopunks/base/stores/gdb"
	"github.com/philipjonsen/cryptopunks/base/stores/gdb/marketmodel"
	"github.com/philipjonsen/cryptopunks/base/stores/xkv"
	"github.com/philipjonsen/cryptopunks/src/config"
	"github.com/philipjonsen/cryptopunks/src/dao"
	"github.com/philipjonsen/cryptopunks/src/market"
	"github.com/philipjonsen/cryptopunks/src/service/treasury"
)

type ServerCtx struct {
	C       *config.Config
	DB      *gorm.DB
	Dao     *dao.Dao
	KvStore *xkv.Store
	Market  *market.Market
}

// NewServiceContext wires every infrastructure component the service
// needs: logger, cache, database, dao, treasury and the ledger
// itself.
func NewServiceContext(c *config.Config) (*ServerCtx, error) {
	if _, err := xzap.SetUp(c.Log); err != nil {
		return nil, err
	}

	if !common.IsHexAddress(c.Market.AdminAddress) {
		return nil, errors.New("invalid market admin_address config")
	}
	admin := common.HexToAddress(c.Market.AdminAddress)

	var kvConf kv.KvConf
	for _, con := range c.Kv.Redis {
		kvConf = append(kvConf, cache.NodeConf{
			RedisConf: redis.RedisConf{
				Host: con.Host,
				Type: con.Type,
				Pass: con.Pass,
			},
			Weight: 1,
		})
	}
	store := xkv.NewStore(kvConf)

	db, err := gdb.NewDB(&c.DB)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&marketmodel.Activity{}, &marketmodel.Payout{}); err != nil {
		return nil, errors.Wrap(err, "failed on migrate market tables")
	}

	d := dao.New(context.Background(), db, store)

	ledger := market.New(admin,
		treasury.New(context.Background(), d),
		market.WithEventSink(activitySink(d)),
	)

	serverCtx := NewServerCtx(
		WithDB(db),
		WithKv(store),
		WithDao(d),
		WithMarket(ledger),
	)
	serverCtx.C = c
	return serverCtx, nil
}

// activitySink persists committed ledger events off the caller's
// path. Persistence failures are logged and dropped: events index
// state, they never define it.
func activitySink(d *dao.Dao) market.EventSink {
	return func(evt market.Event) {
		threading.GoSafe(func() {
			if err := d.AddActivity(context.Background(), evt); err != nil {
				xzap.WithContext(context.Background()).Error("failed on persist activity",
					zap.String("type", evt.Type),
					zap.Uint32("asset_id", evt.AssetID),
					zap.Error(err))
			}
		})
	}
}
