package svc

import (
	"gorm.io/gorm"

	"github.com/philipjonsen/cryptopunks/base/stores/xkv"
	"github.com/philipjonsen/cryptopunks/src/dao"
	"github.com/philipjonsen/cryptopunks/src/market"
)

// CtxConfig collects the components of a ServerCtx; assembled with
// the option pattern.
type CtxConfig struct {
	db      *gorm.DB
	dao     *dao.Dao
	kvStore *xkv.Store
	market  *market.Market
}

type CtxOption func(conf *CtxConfig)

func NewServerCtx(options ...CtxOption) *ServerCtx {
	c := &CtxConfig{}
	for _, opt := range options {
		opt(c)
	}
	return &ServerCtx{
		DB:      c.db,
		Dao:     c.dao,
		KvStore: c.kvStore,
		Market:  c.market,
	}
}

func WithDB(db *gorm.DB) CtxOption {
	return func(conf *CtxConfig) {
		conf.db = db
	}
}

func WithDao(d *dao.Dao) CtxOption {
	return func(conf *CtxConfig) {
		conf.dao = d
	}
}

func WithKv(kv *xkv.Store) CtxOption {
	return func(conf *CtxConfig) {
		conf.kvStore = kv
	}
}

func WithMarket(m *market.Market) CtxOption {
	return func(conf *CtxConfig) {
		conf.market = m
	}
}
