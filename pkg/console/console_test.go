package console_test

import (
	"context"
	"testing"

	core "github.com/sitedeck/go-layout/components/layout"
	"github.com/sitedeck/go-layout/pkg/console"
	layoutpkg "github.com/sitedeck/go-layout/pkg/layout"
)

type stubMenuBuilder struct {
	calls int
}

func (s *stubMenuBuilder) EnsureMenuItem(context.Context, string, console.MenuItem) error {
	s.calls++
	return nil
}

func TestConsoleBootstrapSeedsMenu(t *testing.T) {
	builder := &stubMenuBuilder{}
	service := layoutpkg.NewService(core.Options{})
	shell, err := console.New(console.Config{
		EnableDashboard: true,
		Service:         service,
		MenuBuilder:     builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := shell.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if builder.calls != 1 {
		t.Fatalf("expected 1 call, got %d", builder.calls)
	}
	if shell.Dashboard() == nil {
		t.Fatalf("expected layout service")
	}
}

func TestConsoleDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	shell, err := console.New(console.Config{
		EnableDashboard: false,
		MenuBuilder:     builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := shell.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if builder.calls != 0 {
		t.Fatalf("expected 0 calls, got %d", builder.calls)
	}
	if shell.Dashboard() != nil {
		t.Fatalf("expected nil service when disabled")
	}
}

func TestConsoleRequiresServiceWhenEnabled(t *testing.T) {
	if _, err := console.New(console.Config{EnableDashboard: true}); err == nil {
		t.Fatal("expected error when service missing")
	}
}
