// Package stylesheet keeps the ordered set of style blocks registered at
// runtime. Blocks are opaque text; nothing here parses them.
package stylesheet

import (
	"go.uber.org/zap"
)

// Registry holds registered style blocks in insertion order. A block may be
// registered more than once; each registration is a separate entry.
type Registry struct {
	blocks  []string
	version int
	logger  *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{logger: logger.Named("stylesheet")}
}

// InsertStyle appends a block. Style text is never rejected.
func (r *Registry) InsertStyle(text string) {
	r.blocks = append(r.blocks, text)
	r.version++
	r.logger.Info("inserted style", zap.String("css", text), zap.Int("blocks", len(r.blocks)))
}

// RemoveStyle removes the earliest registration of text. It reports whether
// a block was removed.
func (r *Registry) RemoveStyle(text string) bool {
	for i, b := range r.blocks {
		if b == text {
			r.blocks = append(r.blocks[:i], r.blocks[i+1:]...)
			r.version++
			r.logger.Debug("removed style", zap.Int("blocks", len(r.blocks)))
			return true
		}
	}
	r.logger.Debug("remove of unregistered style ignored")
	return false
}

// Styles returns the registered blocks in order.
func (r *Registry) Styles() []string {
	out := make([]string, len(r.blocks))
	copy(out, r.blocks)
	return out
}

// Version increases with every change, so callers can skip work when nothing
// was registered or removed.
func (r *Registry) Version() int {
	return r.version
}
