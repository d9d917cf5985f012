package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Chain      Chain  `yaml:"chain"`
	Redis      Redis  `yaml:"redis"`
}

type Chain struct {
	RESTURL       string        `yaml:"rest-url" env:"REST_URL" env-default:"https://rest.testnet.initia.xyz"`
	ChainID       string        `yaml:"chain-id" env:"CHAIN_ID" env-default:"initiation-2"`
	ModuleAddress string        `yaml:"module-address" env:"MODULE_ADDRESS" env-default:"0xa074bebd5af4f6d50750ad57d334bd980b23569d"`
	ModuleName    string        `yaml:"module-name" env:"MODULE_NAME" env-default:"tictactoe"`
	GasPrices     string        `yaml:"gas-prices" env:"GAS_PRICES" env-default:"0.015uinit"`
	PollInterval  time.Duration `yaml:"poll-interval" env:"POLL_INTERVAL" env-default:"3s"`
	TxTimeout     time.Duration `yaml:"tx-timeout" env:"TX_TIMEOUT" env-default:"30s"`
	QueryTimeout  time.Duration `yaml:"query-timeout" env:"QUERY_TIMEOUT" env-default:"10s"`
	RetryMax      int           `yaml:"retry-max" env:"RETRY_MAX" env-default:"3"`
}

type Redis struct {
	Host        string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port        string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	SnapshotTTL time.Duration `yaml:"snapshot-ttl" env:"REDIS_SNAPSHOT_TTL" env-default:"10m"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
