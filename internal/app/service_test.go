package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeService struct {
	name     string
	startErr error
	block    bool

	mu      sync.Mutex
	stopped bool
	order   *[]string
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *fakeService) Stop(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.order != nil {
		*s.order = append(*s.order, s.name)
	}
	return nil
}

func TestRunnerStopsAllServicesWhenOneFails(t *testing.T) {
	var order []string
	failing := &fakeService{name: "http", startErr: errors.New("listen failed"), order: &order}
	blocking := &fakeService{name: "worker", block: true, order: &order}

	err := NewRunner(failing, blocking).Run(context.Background(), time.Second, nil)
	if err == nil || err.Error() != "listen failed" {
		t.Fatalf("expected start error, got %v", err)
	}
	if !failing.stopped || !blocking.stopped {
		t.Fatalf("all services must be stopped")
	}
	if len(order) != 2 || order[0] != "worker" || order[1] != "http" {
		t.Fatalf("services must stop in reverse order, got %v", order)
	}
}

func TestRunnerReturnsNilOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := &fakeService{name: "http", block: true}
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	if err := NewRunner(svc).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancel should end runner cleanly, got %v", err)
	}
	if !svc.stopped {
		t.Fatalf("service must be stopped after cancel")
	}
}

func TestRunnerWithoutServices(t *testing.T) {
	if err := NewRunner(nil).Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("runner without services should fail")
	}
}

func TestValidMode(t *testing.T) {
	for _, mode := range []string{ModeAll, ModeAPI, ModeWorker} {
		if !ValidMode(mode) {
			t.Fatalf("mode %s should be valid", mode)
		}
	}
	if ValidMode("cron") {
		t.Fatalf("unknown mode should be invalid")
	}
}
