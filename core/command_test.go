package core

import (
	"errors"
	"testing"
)

func TestCommandRegistry(t *testing.T) {
	registry := NewCommandRegistry(4)

	// Register a command
	var called bool
	var got string
	handler := func(args Args) error {
		called = true
		got = args.String()
		return nil
	}

	if err := registry.Register("led", handler); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Verify command can be retrieved
	cmd, ok := registry.GetCommand(0)
	if !ok {
		t.Fatal("Failed to retrieve registered command")
	}
	if cmd.Name != "led" {
		t.Errorf("Expected command name 'led', got '%s'", cmd.Name)
	}

	// Test dispatch
	line := []byte("led on")
	found, err := registry.Dispatch([]byte("led"), newArgs(line, 4))
	if err != nil {
		t.Errorf("Dispatch failed: %v", err)
	}
	if !found {
		t.Error("Dispatch did not find the command")
	}
	if !called {
		t.Error("Command handler was not called")
	}
	if got != "on" {
		t.Errorf("Expected args 'on', got '%s'", got)
	}

	// Test unknown command
	found, err = registry.Dispatch([]byte("fan"), Args{})
	if found || err != nil {
		t.Errorf("Expected unknown command to be skipped, got found=%v err=%v", found, err)
	}
}

func TestCommandRegistryMultiple(t *testing.T) {
	registry := NewCommandRegistry(3)

	for _, name := range []string{"command1", "command2", "command3"} {
		if err := registry.Register(name, func(Args) error { return nil }); err != nil {
			t.Fatalf("Register(%s) failed: %v", name, err)
		}
	}

	if registry.Count() != 3 {
		t.Errorf("Expected 3 commands, got %d", registry.Count())
	}

	// Verify all commands exist in registration order
	names := registry.Names()
	for i, want := range []string{"command1", "command2", "command3"} {
		if names[i] != want {
			t.Errorf("Command %d: expected %s, got %s", i, want, names[i])
		}
		if _, ok := registry.GetCommand(i); !ok {
			t.Errorf("Command %d not found", i)
		}
	}

	if _, ok := registry.GetCommand(3); ok {
		t.Error("Expected index 3 to be out of range")
	}
}

func TestCommandRegistryErrors(t *testing.T) {
	nop := func(Args) error { return nil }

	registry := NewCommandRegistry(2)
	if err := registry.Register("a", nop); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name    string
		cmd     string
		handler CommandHandler
		want    error
	}{
		{"nil handler", "b", nil, ErrUndefinedUserCommand},
		{"duplicate", "a", nop, ErrDuplicateCommand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := registry.Register(tt.cmd, tt.handler); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	if err := registry.Register("b", nop); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := registry.Register("c", nop); !errors.Is(err, ErrRegistryFull) {
		t.Errorf("Expected ErrRegistryFull, got %v", err)
	}
	if registry.Capacity() != 2 {
		t.Errorf("Expected capacity 2, got %d", registry.Capacity())
	}
}

func TestCommandRegistryLockedDuringDispatch(t *testing.T) {
	registry := NewCommandRegistry(4)

	var inner error
	registry.Register("setup", func(Args) error {
		inner = registry.Register("late", func(Args) error { return nil })
		return nil
	})

	if _, err := registry.Dispatch([]byte("setup"), Args{}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if !errors.Is(inner, ErrRegistryLocked) {
		t.Errorf("Expected ErrRegistryLocked, got %v", inner)
	}

	// Unlocked again once the handler returned
	if err := registry.Register("late", func(Args) error { return nil }); err != nil {
		t.Errorf("Register after dispatch failed: %v", err)
	}
}

func TestCommandRegistryExactMatch(t *testing.T) {
	registry := NewCommandRegistry(2)

	var calls int
	registry.Register("led", func(Args) error {
		calls++
		return nil
	})

	for _, name := range []string{"LED", "le", "leds"} {
		if found, _ := registry.Dispatch([]byte(name), Args{}); found {
			t.Errorf("Expected %q not to match 'led'", name)
		}
	}
	if calls != 0 {
		t.Errorf("Expected no calls, got %d", calls)
	}
}

func TestCommandRegistryHandlerError(t *testing.T) {
	registry := NewCommandRegistry(1)
	want := errors.New("pin busy")
	registry.Register("gpio", func(Args) error { return want })

	found, err := registry.Dispatch([]byte("gpio"), Args{})
	if !found {
		t.Fatal("Expected gpio to be found")
	}
	if !errors.Is(err, want) {
		t.Errorf("Expected handler error, got %v", err)
	}
}
