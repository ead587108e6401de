package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig wraps failures to parse environment variables into a struct.
var ErrParsingConfig = errors.New("failed to parse config from environment")

var (
	loadDotEnv sync.Once
	cache      sync.Map // reflect.Type -> any (struct value)
	mu         sync.Mutex
)

// Load fills cfg from environment variables. The first call for a given type
// parses the environment; later calls copy the cached value.
func Load[T any](cfg *T) error {
	loadDotEnv.Do(func() {
		// Missing .env files are fine: real environments set variables directly.
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()
	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, fmt.Errorf("%s: %w", key, err))
	}
	cache.Store(key, parsed)
	*cfg = parsed
	return nil
}

// MustLoad is like Load but panics on error. Intended for process startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Parse fills cfg from the given variables only, bypassing the process
// environment and the cache.
func Parse[T any](cfg *T, environment map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}
