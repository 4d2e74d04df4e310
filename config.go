package bptree

import "github.com/cockroachdb/errors"

const (
	// DefaultCapacity is the node capacity used when Config.Capacity is 0.
	DefaultCapacity = 127
	// MinCapacity is the smallest node capacity for which splitting a full
	// node leaves two non-empty halves at every level.
	MinCapacity = 3
)

// Config configures a tree.
type Config struct {
	// CacheDisabled turns off the recently-used-leaf fast path. Every keyed
	// operation then descends from the root and the hit count stays 0.
	CacheDisabled bool
	// Capacity is the size of the circular buffers backing each node. A node
	// splits when it reaches Capacity entries.
	Capacity int
	// Listener, if set, is notified synchronously about structural changes.
	Listener EventListener
}

func (cfg Config) normalized() Config {
	if cfg.Capacity == 0 {
		cfg.Capacity = DefaultCapacity
	}
	return cfg
}

func (cfg Config) validate() error {
	cfg = cfg.normalized()
	if cfg.Capacity < MinCapacity {
		return errors.Wrapf(ErrInvalidConfig, "capacity %d is below minimum %d",
			cfg.Capacity, MinCapacity)
	}
	return nil
}
