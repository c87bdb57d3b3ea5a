package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"roi-analyzer/internal/logger"
)

// Manager turns SIGINT/SIGTERM into context cancellation. The scan
// polls that context at iteration boundaries, so an interrupt lands as
// a Cancelled run whose partial series still reaches the export path.
type Manager struct {
	log    logger.Logger
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func NewManager(parent context.Context, log logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(parent)
	return &Manager{
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Listen starts watching for termination signals.
func (m *Manager) Listen() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		sig := <-sigChan
		m.log.Info("shutdown", "signal received, cancelling run", map[string]interface{}{
			"signal": sig.String(),
		})
		m.Shutdown()
	}()
}

// Context is cancelled when a shutdown has been requested.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Shutdown cancels the context. Safe to call more than once.
func (m *Manager) Shutdown() {
	m.once.Do(m.cancel)
}
