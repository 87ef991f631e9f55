package reed

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn and returns what it wrote to os.Stderr.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	defer func() { os.Stderr = old }()

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.String()
	}()
	fn()
	w.Close()
	return <-done
}

// ---- Debug mode tests ------------------------------------------------------

func TestDebugModeDisposedNodePanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"disposed child", func() {
			parent := NewContainer("parent")
			child := NewNode("child", 10, 10)
			child.Dispose()
			parent.AddChild(child)
		}},
		{"disposed parent", func() {
			parent := NewContainer("parent")
			parent.Dispose()
			parent.AddChild(NewNode("child", 10, 10))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene()
			s.SetDebugMode(true)
			defer s.SetDebugMode(false)

			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic, got none")
				}
				if msg := fmt.Sprint(r); !strings.Contains(msg, "disposed") {
					t.Errorf("panic message should mention 'disposed', got: %s", msg)
				}
			}()
			tt.fn()
		})
	}
}

func TestReleaseModeDisposedNodeNoPanic(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(false)

	child := NewNode("child", 10, 10)
	child.Dispose()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("release mode should not panic on a disposed node, got: %v", r)
		}
	}()
	s.Root().AddChild(child)
}

func TestDebugModeTreeDepthWarning(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	output := captureStderr(t, func() {
		current := s.Root()
		for i := 0; i < debugMaxTreeDepth+5; i++ {
			child := NewContainer(fmt.Sprintf("depth_%d", i))
			current.AddChild(child)
			current = child
		}
	})
	if !strings.Contains(output, "warning: tree depth") {
		t.Errorf("expected tree depth warning in stderr, got: %q", output)
	}
}

func TestDebugModeChildCountWarning(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	output := captureStderr(t, func() {
		parent := NewContainer("many_children")
		s.Root().AddChild(parent)
		for i := 0; i < debugMaxChildCount+1; i++ {
			parent.AddChild(NewContainer(fmt.Sprintf("c_%d", i)))
		}
	})
	if !strings.Contains(output, "warning: node") || !strings.Contains(output, "children") {
		t.Errorf("expected child count warning in stderr, got: %q", output)
	}
}

func TestDebugLogging(t *testing.T) {
	s, _, _ := touchScene()

	quiet := captureStderr(t, func() {
		s.ProcessZoom(GestureStarted, 1, unknownPosition())
	})
	if quiet != "" {
		t.Errorf("release mode logged: %q", quiet)
	}

	s.SetDebugMode(true)
	defer s.SetDebugMode(false)
	output := captureStderr(t, func() {
		s.ProcessZoom(GestureStarted, 1, unknownPosition())
		_ = sendFrame(s, rawPoint{1, TouchMoved, 0, 0})
	})
	for _, want := range []string{"[reed] zoom started with unknown position", "[reed] touch session aborted"} {
		if !strings.Contains(output, want) {
			t.Errorf("debug output missing %q:\n%s", want, output)
		}
	}
}
