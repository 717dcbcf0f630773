package app

import (
	"fmt"
	"io"
	"slices"

	"github.com/dshills/propbrowser/internal/browser"
	"github.com/dshills/propbrowser/internal/config"
	"github.com/dshills/propbrowser/internal/config/watcher"
	"github.com/dshills/propbrowser/internal/logging"
)

// reloadKey coalesces configuration reloads in the task queue.
type reloadKey struct{}

// Destroyer is implemented by managers handed to Track.
type Destroyer interface {
	Destroy()
}

// Options configures a session.
type Options struct {
	// ConfigPath is the configuration file. Empty means defaults only.
	ConfigPath string

	// LogLevel overrides the configured logging level when set.
	LogLevel string

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// Watch reloads the configuration when its file changes.
	Watch bool

	// SkipEnv ignores PROPBROWSER_ environment overrides.
	SkipEnv bool
}

// Session is the application context. It owns the registry shared by its
// browsers, the logger, the task queue and the configuration.
//
// A session and everything it creates belong to one goroutine. Only the
// task queue may be used from others.
type Session struct {
	opts     Options
	logger   *logging.Logger
	registry *browser.Registry
	tasks    *TaskQueue
	config   *config.Config
	watcher  *watcher.Watcher

	browsers       []*browser.Browser
	managers       []Destroyer
	configHandlers []func(*config.Config)

	closed bool
}

// New loads the configuration and starts a session.
func New(opts Options) (*Session, error) {
	cfg, err := config.Load(config.Options{Path: opts.ConfigPath, SkipEnv: opts.SkipEnv})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, NewOperationError("load config", opts.ConfigPath, err))
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	if opts.LogOutput != nil {
		logCfg.Output = opts.LogOutput
	}
	logger := logging.New(logCfg)

	s := &Session{
		opts:     opts,
		logger:   logger,
		registry: browser.NewRegistry(logger),
		tasks:    NewTaskQueue(),
		config:   cfg,
	}

	if opts.Watch && opts.ConfigPath != "" {
		if err := s.startWatcher(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInitialization, NewOperationError("watch config", opts.ConfigPath, err))
		}
	}

	logger.WithComponent("session").Debug("session started (config %q, level %s)", opts.ConfigPath, level)
	return s, nil
}

func (s *Session) startWatcher() error {
	w, err := watcher.New()
	if err != nil {
		return err
	}
	if err := w.Watch(s.opts.ConfigPath); err != nil {
		_ = w.Close()
		return err
	}

	log := s.logger.WithComponent("watcher")
	w.OnChange(func(ev watcher.Event) {
		log.Debug("config %s: %s", ev.Op, ev.Path)
		s.tasks.PostOnce(reloadKey{}, func() {
			if err := s.Reload(); err != nil {
				log.Warn("reload failed: %v", err)
			}
		})
	})
	w.OnError(func(err error) {
		log.Error("watch error: %v", err)
	})
	s.watcher = w
	return nil
}

// Logger returns the session logger.
func (s *Session) Logger() *logging.Logger {
	return s.logger
}

// Registry returns the registry shared by the session's browsers.
func (s *Session) Registry() *browser.Registry {
	return s.registry
}

// Tasks returns the session task queue.
func (s *Session) Tasks() *TaskQueue {
	return s.tasks
}

// Post queues fn on the session task queue.
func (s *Session) Post(fn func()) bool {
	return s.tasks.Post(fn)
}

// Drain runs the queued tasks on the caller's goroutine.
func (s *Session) Drain() int {
	return s.tasks.Drain()
}

// Config returns the current configuration.
func (s *Session) Config() *config.Config {
	return s.config
}

// NewBrowser creates a browser bound to the session registry. The session
// closes it on Close.
func (s *Session) NewBrowser(view browser.View) (*browser.Browser, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	b := browser.New(view, browser.WithRegistry(s.registry), browser.WithLogger(s.logger))
	s.browsers = append(s.browsers, b)
	return b, nil
}

// Browsers returns the open browsers.
func (s *Session) Browsers() []*browser.Browser {
	return slices.Clone(s.browsers)
}

// CloseBrowser closes b and forgets it.
func (s *Session) CloseBrowser(b *browser.Browser) {
	i := slices.Index(s.browsers, b)
	if i < 0 {
		return
	}
	s.browsers = slices.Delete(s.browsers, i, i+1)
	b.Close()
}

// Track hands m to the session, which destroys it on Close.
func (s *Session) Track(m Destroyer) error {
	if s.closed {
		return ErrSessionClosed
	}
	if m != nil && !slices.Contains(s.managers, m) {
		s.managers = append(s.managers, m)
	}
	return nil
}

// OnConfigChanged registers fn to run after every successful Reload.
func (s *Session) OnConfigChanged(fn func(*config.Config)) {
	if fn != nil {
		s.configHandlers = append(s.configHandlers, fn)
	}
}

// Reload reads the configuration again. On failure the current
// configuration stays in effect.
func (s *Session) Reload() error {
	if s.closed {
		return ErrSessionClosed
	}
	cfg, err := config.Load(config.Options{Path: s.opts.ConfigPath, SkipEnv: s.opts.SkipEnv})
	if err != nil {
		return NewOperationError("reload", s.opts.ConfigPath, err)
	}
	if s.opts.LogLevel != "" {
		cfg.Logging.Level = s.opts.LogLevel
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return NewOperationError("reload", s.opts.ConfigPath, err)
	}

	s.config = cfg
	s.logger.SetLevel(level)
	s.logger.WithComponent("session").Info("configuration reloaded")

	for _, fn := range slices.Clone(s.configHandlers) {
		fn(cfg)
	}
	return nil
}

// Close closes every browser, destroys tracked managers in reverse order,
// stops the config watcher and discards pending tasks. Closing twice is a
// no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs ErrorList
	for _, b := range slices.Backward(s.browsers) {
		b.Close()
	}
	s.browsers = nil

	for _, m := range slices.Backward(s.managers) {
		m.Destroy()
	}
	s.managers = nil

	if s.watcher != nil {
		errs.Add(s.watcher.Close())
	}
	s.tasks.Close()
	s.configHandlers = nil

	return errs.AsError()
}
