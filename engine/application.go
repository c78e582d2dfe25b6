package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/kamera/camera"
	"github.com/spaghettifunk/kamera/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel core.LogLevel
	// Camera controller tuning, hot-reloadable from the config file.
	CameraTuning camera.Tuning
	// Path the config was loaded from; empty when built in code.
	Path string
}

// fileConfig is the on-disk TOML shape of the application config.
type fileConfig struct {
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
	Window   struct {
		PosX   uint32 `toml:"pos_x"`
		PosY   uint32 `toml:"pos_y"`
		Width  uint32 `toml:"width"`
		Height uint32 `toml:"height"`
	} `toml:"window"`
	Camera struct {
		SmoothingWeight        float32 `toml:"smoothing_weight"`
		MouseRotateSensitivity float32 `toml:"mouse_rotate_sensitivity"`
		TranslateSensitivity   float32 `toml:"translate_sensitivity"`
	} `toml:"camera"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  1280,
		StartHeight: 720,
		Name:        "Kamera",
		LogLevel:    core.InfoLevel,
		CameraTuning: camera.Tuning{
			SmoothingWeight:        0.9,
			MouseRotateSensitivity: 0.2,
			TranslateSensitivity:   2.0,
		},
	}
}

// LoadApplicationConfig reads a TOML config file on top of the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.Name != "" {
		config.Name = fc.Name
	}
	if fc.LogLevel != "" {
		level, err := parseLogLevel(fc.LogLevel)
		if err != nil {
			return nil, err
		}
		config.LogLevel = level
	}
	if fc.Window.Width != 0 {
		config.StartWidth = fc.Window.Width
	}
	if fc.Window.Height != 0 {
		config.StartHeight = fc.Window.Height
	}
	if fc.Window.PosX != 0 {
		config.StartPosX = fc.Window.PosX
	}
	if fc.Window.PosY != 0 {
		config.StartPosY = fc.Window.PosY
	}
	if fc.Camera.SmoothingWeight != 0 {
		config.CameraTuning.SmoothingWeight = fc.Camera.SmoothingWeight
	}
	if fc.Camera.MouseRotateSensitivity != 0 {
		config.CameraTuning.MouseRotateSensitivity = fc.Camera.MouseRotateSensitivity
	}
	if fc.Camera.TranslateSensitivity != 0 {
		config.CameraTuning.TranslateSensitivity = fc.Camera.TranslateSensitivity
	}
	config.Path = path

	return config, nil
}

func parseLogLevel(s string) (core.LogLevel, error) {
	switch s {
	case "debug":
		return core.DebugLevel, nil
	case "info":
		return core.InfoLevel, nil
	case "warn":
		return core.WarnLevel, nil
	case "error":
		return core.ErrorLevel, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// ConfigWatcher watches the application config file and fires a camera
// tuning event whenever the camera section changes on disk.
type ConfigWatcher struct {
	fsnotify *fsnotify.Watcher
	path     string
	done     chan struct{}
}

func WatchApplicationConfig(path string) (*ConfigWatcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors replace files on save, which drops a
	// watch on the file itself.
	if err := fsWatch.Add(filepath.Dir(path)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &ConfigWatcher{
		fsnotify: fsWatch,
		path:     path,
		done:     make(chan struct{}),
	}
	go w.watch()
	return w, nil
}

func (w *ConfigWatcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			config, err := LoadApplicationConfig(w.path)
			if err != nil {
				core.LogWarn("config reload failed: %s", err)
				continue
			}
			core.LogInfo("camera tuning reloaded from %s", w.path)
			core.EventFire(core.EventContext{
				Type: core.EVENT_CODE_CAMERA_TUNING_CHANGED,
				Data: &camera.TuningEvent{
					Tuning: config.CameraTuning,
				},
			})
		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogWarn("config watcher error: %s", err)
		}
	}
}

func (w *ConfigWatcher) Close() error {
	close(w.done)
	return w.fsnotify.Close()
}
