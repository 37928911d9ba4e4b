package runtime

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config captures every knob shared across the fileexpo CLI and TUI entry
// points. Keeping it as a lightweight struct makes it trivial to reuse in
// tests.
type Config struct {
	StartDir       string
	DataDir        string
	TagsPath       string
	DBPath         string
	LogPath        string
	ConfigPath     string
	OllamaEndpoint string
	OllamaModel    string
	SummaryWords   int
	SummaryTTL     time.Duration
	ShowHidden     bool
	Sort           string
	Debug          bool
}

// DefaultConfig infers sensible defaults from the current directory and the
// user's home. Errors are ignored so callers can override manually.
func DefaultConfig() Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	dataDir := ".fileexpo"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".fileexpo")
	}
	// Environment overrides, optionally sourced from a .env file.
	_ = godotenv.Load()
	return Config{
		StartDir:       cwd,
		DataDir:        dataDir,
		OllamaEndpoint: os.Getenv("FILEEXPO_OLLAMA_ENDPOINT"),
		OllamaModel:    os.Getenv("FILEEXPO_OLLAMA_MODEL"),
		SummaryWords:   150,
		SummaryTTL:     1 * time.Hour,
		Sort:           "name",
	}
}

// Normalize makes every path absolute and fills missing defaults so the
// runtime never has to re-check the same invariants.
func (c *Config) Normalize() error {
	if c.StartDir == "" {
		return fmt.Errorf("start directory required")
	}
	absStart, err := filepath.Abs(c.StartDir)
	if err != nil {
		return fmt.Errorf("resolve start dir: %w", err)
	}
	c.StartDir = absStart
	if c.DataDir == "" {
		c.DataDir = ".fileexpo"
	}
	absData, err := filepath.Abs(c.DataDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	c.DataDir = absData
	if c.TagsPath == "" {
		c.TagsPath = filepath.Join(c.DataDir, "tags.json")
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "fileexpo.db")
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(c.DataDir, "fileexpo.log")
	}
	if c.ConfigPath == "" {
		c.ConfigPath = filepath.Join(c.DataDir, "config.yaml")
	}
	if c.OllamaEndpoint == "" {
		c.OllamaEndpoint = "http://localhost:11434"
	}
	if c.OllamaModel == "" {
		c.OllamaModel = "llama3.2"
	}
	if c.SummaryWords <= 0 {
		c.SummaryWords = 150
	}
	if c.SummaryTTL <= 0 {
		c.SummaryTTL = 1 * time.Hour
	}
	if c.Sort == "" {
		c.Sort = "name"
	}
	return nil
}

// Bookmark is a named directory shortcut shown in the TUI.
type Bookmark struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// WorkspaceConfig captures persisted UI selections for reuse across runs.
type WorkspaceConfig struct {
	Model        string     `yaml:"model,omitempty"`
	Endpoint     string     `yaml:"endpoint,omitempty"`
	ShowHidden   bool       `yaml:"show_hidden"`
	Sort         string     `yaml:"sort,omitempty"`
	SummaryWords int        `yaml:"summary_words,omitempty"`
	Bookmarks    []Bookmark `yaml:"bookmarks"`
	LastUpdated  int64      `yaml:"last_updated"`
}

// DefaultBookmarks seeds the usual home shortcuts, keeping only the ones
// that exist on this machine.
func DefaultBookmarks() []Bookmark {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	candidates := []Bookmark{
		{Name: "Home", Path: home},
		{Name: "Documents", Path: filepath.Join(home, "Documents")},
		{Name: "Downloads", Path: filepath.Join(home, "Downloads")},
		{Name: "Desktop", Path: filepath.Join(home, "Desktop")},
	}
	var out []Bookmark
	for _, b := range candidates {
		if info, err := os.Stat(b.Path); err == nil && info.IsDir() {
			out = append(out, b)
		}
	}
	return out
}

// LoadWorkspaceConfig loads persisted selections. A missing file yields the
// defaults rather than an error.
func LoadWorkspaceConfig(path string) (WorkspaceConfig, error) {
	if path == "" {
		return WorkspaceConfig{}, fmt.Errorf("config path required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return WorkspaceConfig{Bookmarks: DefaultBookmarks()}, nil
		}
		return WorkspaceConfig{}, err
	}
	var cfg WorkspaceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return WorkspaceConfig{}, err
	}
	if len(cfg.Bookmarks) == 0 {
		cfg.Bookmarks = DefaultBookmarks()
	}
	return cfg, nil
}

// SaveWorkspaceConfig persists selections for future sessions.
func SaveWorkspaceConfig(path string, cfg WorkspaceConfig) error {
	if path == "" {
		return fmt.Errorf("config path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	cfg.LastUpdated = time.Now().Unix()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Apply folds persisted workspace selections into the runtime config without
// overriding anything the user set explicitly via flags or environment.
func (c *Config) Apply(ws WorkspaceConfig) {
	if ws.Model != "" && os.Getenv("FILEEXPO_OLLAMA_MODEL") == "" {
		c.OllamaModel = ws.Model
	}
	if ws.Endpoint != "" && os.Getenv("FILEEXPO_OLLAMA_ENDPOINT") == "" {
		c.OllamaEndpoint = ws.Endpoint
	}
	if ws.Sort != "" {
		c.Sort = ws.Sort
	}
	if ws.SummaryWords > 0 {
		c.SummaryWords = ws.SummaryWords
	}
	c.ShowHidden = c.ShowHidden || ws.ShowHidden
}
