package nuci

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Committer flushes a batch of staged edits as one transaction.
type Committer interface {
	Commit(edits []any) error
}

// CommitterFunc adapts a function into a Committer.
type CommitterFunc func(edits []any) error

// Commit delegates to the underlying function.
func (fn CommitterFunc) Commit(edits []any) error {
	return fn(edits)
}

// Configurator queues configuration edits from independent feature modules
// and commits them in one batch. Payloads are opaque to this layer; the
// committer interprets them. Not safe for concurrent use: each request owns
// its own Configurator.
type Configurator struct {
	committer Committer
	staged    []any
	logger    zerolog.Logger
}

// ConfiguratorOption customises a Configurator.
type ConfiguratorOption func(*Configurator)

// WithCommitLogger injects a logger; the default discards everything.
func WithCommitLogger(logger zerolog.Logger) ConfiguratorOption {
	return func(c *Configurator) {
		c.logger = logger.With().Str("component", "configurator").Logger()
	}
}

// NewConfigurator constructs a Configurator flushing through committer.
func NewConfigurator(committer Committer, options ...ConfiguratorOption) *Configurator {
	c := &Configurator{
		committer: committer,
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// AddConfigUpdate stages an edit for the next commit.
func (c *Configurator) AddConfigUpdate(edit any) {
	c.logger.Debug().Int("staged", len(c.staged)+1).Msg("staging config update")
	c.staged = append(c.staged, edit)
}

// Staged returns the number of edits waiting for commit.
func (c *Configurator) Staged() int { return len(c.staged) }

// Commit flushes every staged edit as one transaction and resets the queue.
// The queue is kept on failure so the caller may retry the same batch.
func (c *Configurator) Commit() error {
	if c.committer == nil {
		return fmt.Errorf("nuci: configurator has no committer")
	}
	edits := c.staged
	c.logger.Debug().Int("edits", len(edits)).Msg("committing staged updates")
	if err := c.committer.Commit(edits); err != nil {
		return &StoreError{Op: "commit", Err: err}
	}
	c.staged = nil
	return nil
}
