package config

import (
	"strings"

	"github.com/spf13/viper"

	logging "github.com/philipjonsen/cryptopunks/base/logger"
	"github.com/philipjonsen/cryptopunks/base/stores/gdb"
)

type Config struct {
	Api     ApiConf         `toml:"api" mapstructure:"api" json:"api"`
	Monitor Monitor         `toml:"monitor" mapstructure:"monitor" json:"monitor"`
	Log     logging.LogConf `toml:"log" mapstructure:"log" json:"log"`
	Kv      KvConf          `toml:"kv" mapstructure:"kv" json:"kv"`
	DB      gdb.Config      `toml:"db" mapstructure:"db" json:"db"`
	Market  MarketConf      `toml:"market" mapstructure:"market" json:"market"`
}

type ApiConf struct {
	Port string `toml:"port" mapstructure:"port" json:"port"`
}

type Monitor struct {
	PprofEnable bool  `toml:"pprof_enable" mapstructure:"pprof_enable" json:"pprof_enable"`
	PprofPort   int64 `toml:"pprof_port" mapstructure:"pprof_port" json:"pprof_port"`
}

type MarketConf struct {
	// AdminAddress is the only identity allowed to run initial
	// distribution; fixed for the process lifetime.
	AdminAddress      string `toml:"admin_address" mapstructure:"admin_address" json:"admin_address"`
	StatsCacheSeconds int    `toml:"stats_cache_seconds" mapstructure:"stats_cache_seconds" json:"stats_cache_seconds"`
}

type KvConf struct {
	Redis []*Redis `toml:"redis" mapstructure:"redis" json:"redis"`
}

type Redis struct {
	Host string `toml:"host" mapstructure:"host" json:"host"`
	Type string `toml:"type" mapstructure:"type" json:"type"`
	Pass string `toml:"pass" mapstructure:"pass" json:"pass"`
}

// UnmarshalConfig loads and parses the config file at configFilePath.
func UnmarshalConfig(configFilePath string) (*Config, error) {
	viper.SetConfigFile(configFilePath)
	viper.SetConfigType("toml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("PUNKS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UnmarshalCmdConfig parses the config file already registered with
// viper by the command layer.
func UnmarshalCmdConfig() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
