package utils

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ShutdownManager runs registered cleanup tasks when SIGINT/SIGTERM arrives.
type ShutdownManager struct {
	cancel  context.CancelFunc
	tasks   []func(context.Context) error
	timeout time.Duration
	done    chan struct{}
	mu      sync.Mutex
}

func NewShutdownManager(ctx context.Context) (context.Context, *ShutdownManager) {
	ctx, cancel := context.WithCancel(ctx)
	return ctx, &ShutdownManager{
		cancel:  cancel,
		timeout: 15 * time.Second,
		done:    make(chan struct{}),
	}
}

func (sm *ShutdownManager) Register(task func(context.Context) error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.tasks = append(sm.tasks, task)
}

func (sm *ShutdownManager) StartListening() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("[SHUTDOWN] Received signal: %v", sig)
		sm.cancel()

		ctx, cancel := context.WithTimeout(context.Background(), sm.timeout)
		defer cancel()

		sm.mu.Lock()
		tasks := sm.tasks
		sm.mu.Unlock()
		for _, task := range tasks {
			if err := task(ctx); err != nil {
				log.Printf("[SHUTDOWN] Error during shutdown: %v", err)
			}
		}

		log.Println("[SHUTDOWN] Graceful shutdown complete")
		close(sm.done)
	}()
}

// Wait blocks until all shutdown tasks have finished.
func (sm *ShutdownManager) Wait() {
	<-sm.done
}
