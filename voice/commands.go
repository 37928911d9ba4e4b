// Package voice maps recognized speech transcripts onto file-manager
// actions. Speech-to-text itself is out of scope; callers hand in plain
// text and receive a structured command from a fixed vocabulary.
package voice

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Kind enumerates the command vocabulary.
type Kind string

const (
	KindOpen       Kind = "open"
	KindBack       Kind = "back"
	KindUp         Kind = "up"
	KindCreateFile Kind = "create_file"
	KindCreateDir  Kind = "create_dir"
	KindDelete     Kind = "delete"
	KindRename     Kind = "rename"
	KindSearch     Kind = "search"
	KindTag        Kind = "tag"
	KindStop       Kind = "stop"
)

// Command is one recognized instruction. Arg carries the name, search term,
// tag label, or target directory depending on Kind.
type Command struct {
	Kind Kind
	Arg  string
}

// ErrUnrecognized is returned when a transcript matches nothing in the
// vocabulary.
var ErrUnrecognized = errors.New("command not recognized")

// wellKnownPlaces resolve spoken destinations to home subdirectories.
var wellKnownPlaces = []string{"Downloads", "Documents", "Desktop", "Pictures", "Music"}

// Parse interprets one transcript. Matching is case-insensitive and keys off
// leading phrases, mirroring how short spoken commands actually arrive.
func Parse(transcript string) (Command, error) {
	orig := strings.TrimSpace(transcript)
	text := strings.ToLower(orig)
	if text == "" {
		return Command{}, ErrUnrecognized
	}

	switch {
	case text == "stop" || text == "exit":
		return Command{Kind: KindStop}, nil
	case text == "back" || text == "go back":
		return Command{Kind: KindBack}, nil
	case text == "up" || text == "go up":
		return Command{Kind: KindUp}, nil
	case strings.HasPrefix(text, "create file"):
		return argCommand(KindCreateFile, orig, "create file")
	case strings.HasPrefix(text, "create folder"):
		return argCommand(KindCreateDir, orig, "create folder")
	case text == "delete":
		return Command{Kind: KindDelete}, nil
	case strings.HasPrefix(text, "rename to"):
		return argCommand(KindRename, orig, "rename to")
	case strings.HasPrefix(text, "search"):
		return argCommand(KindSearch, orig, "search")
	case strings.HasPrefix(text, "tag as"):
		return argCommand(KindTag, orig, "tag as")
	case strings.HasPrefix(text, "open"):
		return argCommand(KindOpen, orig, "open")
	case strings.HasPrefix(text, "go to"):
		return argCommand(KindOpen, orig, "go to")
	}
	return Command{}, ErrUnrecognized
}

// ResolvePlace maps a spoken destination like "downloads" to a directory
// under home. Unknown or missing destinations are rejected.
func ResolvePlace(arg string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	for _, place := range wellKnownPlaces {
		if strings.EqualFold(place, arg) {
			target := filepath.Join(home, place)
			if info, err := os.Stat(target); err == nil && info.IsDir() {
				return target, nil
			}
			return "", errors.New("destination does not exist: " + target)
		}
	}
	if strings.EqualFold(arg, "home") {
		return home, nil
	}
	return "", errors.New("navigation destination not recognized: " + arg)
}

// argCommand slices the argument out of the original (case-preserved)
// transcript; prefixes in the vocabulary are all ASCII so the lowered and
// original strings line up byte for byte.
func argCommand(kind Kind, orig, prefix string) (Command, error) {
	arg := strings.TrimSpace(orig[len(prefix):])
	if arg == "" {
		return Command{}, ErrUnrecognized
	}
	return Command{Kind: kind, Arg: arg}, nil
}
