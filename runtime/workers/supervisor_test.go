package workers

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gachip90/employee-task-management-be/internal"
)

type flakyWorker struct {
	runs int32
}

func (w *flakyWorker) Run(ctx context.Context) error {
	n := atomic.AddInt32(&w.runs, 1)
	if n == 1 {
		panic("first run blows up")
	}
	if n == 2 {
		return fmt.Errorf("second run fails")
	}
	<-ctx.Done()
	return nil
}

func TestSupervisor_Restarts_After_Panic_And_Error(t *testing.T) {
	req := require.New(t)
	log := internal.NewLogger("debug")
	worker := &flakyWorker{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	supervisor := NewSupervisor(log)
	supervisor.Add(worker)
	go supervisor.Run(ctx)

	// Then the worker was restarted past the panic and the error
	req.Eventually(func() bool {
		return atomic.LoadInt32(&worker.runs) >= 3
	}, 3*time.Second, 20*time.Millisecond)

	supervisor.Stop()
}

type quietWorker struct {
	stopped chan struct{}
}

func (w *quietWorker) Run(ctx context.Context) error {
	<-ctx.Done()
	close(w.stopped)
	return nil
}

func TestSupervisor_Stop_Cancels_Workers(t *testing.T) {
	log := internal.NewLogger("debug")
	worker := &quietWorker{stopped: make(chan struct{})}

	supervisor := NewSupervisor(log)
	supervisor.Add(worker)
	go supervisor.Run(context.Background())

	// Give the worker time to start before stopping it
	time.Sleep(20 * time.Millisecond)
	supervisor.Stop()

	select {
	case <-worker.stopped:
	case <-time.After(time.Second):
		t.Fatal("worker was not canceled by Stop")
	}
}
