package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"

	"taskcal/internal/logging"
	"taskcal/internal/storage"
	"taskcal/internal/task"
	"taskcal/internal/view"
)

const (
	AppName               = "taskcal"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tasks.db"
	DefaultLogName        = "taskcal.log"
	// EnvConfig overrides the config file location.
	EnvConfig = "TASKCAL_CONFIG"
)

type Keymap struct {
	Quit     string `toml:"quit"`
	Add      string `toml:"add"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	Toggle   string `toml:"toggle"`
	Delete   string `toml:"delete"`
	Confirm  string `toml:"confirm"`
	Cancel   string `toml:"cancel"`
	Search   string `toml:"search"`
	Filter   string `toml:"filter"`
	View     string `toml:"view"`
	Priority string `toml:"priority"`
	Due      string `toml:"due"`
}

type Config struct {
	Backend         string `toml:"backend"`
	DBPath          string `toml:"db_path"`
	BadgerDir       string `toml:"badger_dir"`
	DefaultFilter   string `toml:"default_filter"`
	DefaultPriority string `toml:"default_priority"`
	WeekStart       string `toml:"week_start"`
	LogFile         string `toml:"log_file"`
	LogLevel        string `toml:"log_level"`
	Keys            Keymap `toml:"keys"`
}

// ResolveConfigPath honours $TASKCAL_CONFIG, then the XDG config home.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, AppName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, cfg.Validate()
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return Config{
		Backend:         storage.BackendSQLite,
		DBPath:          filepath.Join(xdg.DataHome, AppName, DefaultDBName),
		BadgerDir:       filepath.Join(xdg.DataHome, AppName, "badger"),
		DefaultFilter:   string(view.StatusAll),
		DefaultPriority: string(task.PriorityMedium),
		WeekStart:       "sunday",
		LogFile:         filepath.Join(xdg.StateHome, AppName, DefaultLogName),
		LogLevel:        "info",
		Keys: Keymap{
			Quit:     "q",
			Add:      "a",
			Up:       "k",
			Down:     "j",
			Toggle:   " ",
			Delete:   "d",
			Confirm:  "enter",
			Cancel:   "esc",
			Search:   "/",
			Filter:   "f",
			View:     "v",
			Priority: "p",
			Due:      "D",
		},
	}
}

// fillDefaults restores fields a hand-edited file left empty.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Backend == "" {
		c.Backend = def.Backend
	}
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.BadgerDir == "" {
		c.BadgerDir = def.BadgerDir
	}
	if c.DefaultFilter == "" {
		c.DefaultFilter = def.DefaultFilter
	}
	if c.DefaultPriority == "" {
		c.DefaultPriority = def.DefaultPriority
	}
	if c.WeekStart == "" {
		c.WeekStart = def.WeekStart
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	k, d := &c.Keys, def.Keys
	for _, pair := range []struct {
		dst *string
		def string
	}{
		{&k.Quit, d.Quit}, {&k.Add, d.Add}, {&k.Up, d.Up}, {&k.Down, d.Down},
		{&k.Toggle, d.Toggle}, {&k.Delete, d.Delete}, {&k.Confirm, d.Confirm},
		{&k.Cancel, d.Cancel}, {&k.Search, d.Search}, {&k.Filter, d.Filter},
		{&k.View, d.View}, {&k.Priority, d.Priority}, {&k.Due, d.Due},
	} {
		if *pair.dst == "" {
			*pair.dst = pair.def
		}
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if !storage.ValidBackend(c.Backend) {
		errs = append(errs, fmt.Errorf("backend: %q is not one of %s", c.Backend, strings.Join(storage.Backends(), ", ")))
	}
	if _, ok := view.ParseStatus(c.DefaultFilter); !ok {
		errs = append(errs, fmt.Errorf("default_filter: %q is not all, pending or completed", c.DefaultFilter))
	}
	if _, ok := task.ParsePriority(c.DefaultPriority); !ok {
		errs = append(errs, fmt.Errorf("default_priority: %q is not low, medium or high", c.DefaultPriority))
	}
	if _, err := c.FirstWeekday(); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

func (c Config) FirstWeekday() (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(c.WeekStart)) {
	case "", "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	}
	return time.Sunday, fmt.Errorf("week_start: %q is not sunday or monday", c.WeekStart)
}

// StoreOptions maps the backend choice to storage options.
func (c Config) StoreOptions() storage.Options {
	opts := storage.Options{Backend: c.Backend, Path: c.DBPath}
	if strings.EqualFold(c.Backend, storage.BackendBadger) {
		opts.Path = c.BadgerDir
	}
	return opts
}

func (c Config) Filter() view.Status {
	if st, ok := view.ParseStatus(c.DefaultFilter); ok {
		return st
	}
	return view.StatusAll
}

func (c Config) Priority() task.Priority {
	if p, ok := task.ParsePriority(c.DefaultPriority); ok {
		return p
	}
	return task.PriorityMedium
}
