package configs

import "github.com/caarlos0/env/v11"

type Config struct {
	MongoURI       string `env:"MONGO_URI"`
	MongoDatabase  string `env:"MONGO_DB" envDefault:"collector"`
	GatewayURL     string `env:"GATEWAY_URL"`
	ListenAddr     string `env:"LISTEN_ADDR" envDefault:":5000"`
	FrontendOrigin string `env:"FRONTEND_ORIGIN"`
	GinMode        string `env:"GIN_MODE" envDefault:"debug"`
	Debug          bool   `env:"DEBUG"`
}

func Load() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}
