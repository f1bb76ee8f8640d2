package app

import (
	"sync"

	"fyne.io/fyne/v2"

	"tenant-ledger/internal/logger"
	"tenant-ledger/internal/shutdown"
)

// Lifecycle ties the window to the shutdown manager. Closing the window
// shuts the ledger down, and a shutdown started by a signal quits the
// application.
type Lifecycle struct {
	manager *shutdown.Manager
	logger  logger.Logger
	quit    func()
	once    sync.Once
}

func NewLifecycle(m *shutdown.Manager, log logger.Logger, quit func()) *Lifecycle {
	return &Lifecycle{
		manager: m,
		logger:  log,
		quit:    quit,
	}
}

// Start listens for termination signals and quits the GUI once the
// manager has finished.
func (l *Lifecycle) Start() {
	l.manager.Listen()
	go func() {
		<-l.manager.Done()
		fyne.Do(l.quit)
	}()
}

func (l *Lifecycle) Shutdown() {
	l.once.Do(func() {
		l.logger.Info("Lifecycle", "shutdown sequence initiated", nil)
		l.manager.Shutdown()
	})
}
