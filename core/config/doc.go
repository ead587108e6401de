// Package config loads typed configuration structs from environment variables.
//
// Fields are described with caarlos0/env tags. A .env file in the working
// directory is loaded once on first use, and each struct type is parsed only
// once per process:
//
//	type Config struct {
//		Addr string `env:"SERVER_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Parse reads from an explicit map and is what tests use.
package config
