package explorer

import (
	"fmt"
	"os"
	"path/filepath"
)

// Navigator tracks the current directory together with a breadcrumb history
// so back/forward behave like a browser. It holds no filesystem state beyond
// the paths themselves; listings are always re-read.
type Navigator struct {
	current string
	history []string
	pos     int
}

// NewNavigator starts at the given directory.
func NewNavigator(start string) (*Navigator, error) {
	nav := &Navigator{pos: -1}
	if err := nav.Goto(start); err != nil {
		return nil, err
	}
	return nav, nil
}

// Current returns the directory the navigator points at.
func (n *Navigator) Current() string {
	return n.current
}

// Goto changes to path, validating that it is a directory, and truncates any
// forward history the way a browser address bar does.
func (n *Navigator) Goto(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", abs)
	}
	if n.pos < len(n.history)-1 {
		n.history = n.history[:n.pos+1]
	}
	if len(n.history) == 0 || n.history[len(n.history)-1] != abs {
		n.history = append(n.history, abs)
		n.pos = len(n.history) - 1
	}
	n.current = abs
	return nil
}

// Back steps to the previous directory in history. Directories deleted since
// they were visited are pruned and skipped.
func (n *Navigator) Back() (string, bool) {
	for n.pos > 0 {
		n.pos--
		path := n.history[n.pos]
		if dirExists(path) {
			n.current = path
			return path, true
		}
		n.history = append(n.history[:n.pos], n.history[n.pos+1:]...)
	}
	return n.current, false
}

// Forward steps ahead in history, pruning dead directories.
func (n *Navigator) Forward() (string, bool) {
	for n.pos < len(n.history)-1 {
		n.pos++
		path := n.history[n.pos]
		if dirExists(path) {
			n.current = path
			return path, true
		}
		n.history = append(n.history[:n.pos], n.history[n.pos+1:]...)
		n.pos--
	}
	return n.current, false
}

// Up moves to the parent directory, stopping at the filesystem root.
func (n *Navigator) Up() (string, bool) {
	parent := filepath.Dir(n.current)
	if parent == n.current {
		return n.current, false
	}
	if err := n.Goto(parent); err != nil {
		return n.current, false
	}
	return n.current, true
}

// CanBack reports whether Back would move.
func (n *Navigator) CanBack() bool { return n.pos > 0 }

// CanForward reports whether Forward would move.
func (n *Navigator) CanForward() bool { return n.pos < len(n.history)-1 }

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
