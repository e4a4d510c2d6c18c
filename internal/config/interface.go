package config

import (
	"sync/atomic"

	"wireline/internal/config/client"
	"wireline/internal/config/server"
)

type Config interface {
	client.Config | server.Config
}

type Configurable[T Config] interface {
	Config() T
	SetConfig(T)
}

// DefaultConfigurable stores a config value behind an atomic.Pointer so
// concurrent reads never tear and reconfiguring is a single atomic store.
type DefaultConfigurable[T Config] struct {
	_config atomic.Pointer[T]
}

func (c *DefaultConfigurable[T]) Config() T {
	return *c._config.Load()
}

func (c *DefaultConfigurable[T]) SetConfig(cfg T) {
	c._config.Store(&cfg)
}
