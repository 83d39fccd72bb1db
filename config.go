package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"nesinspect/chr"
	"nesinspect/cpu"
	"nesinspect/log"
)

type PaletteConfig struct {
	Colors chr.Palette `toml:"colors"`
}

type DisasmConfig struct {
	MaxSteps   int  `toml:"max_steps"`
	TraceReset bool `toml:"trace_reset"`
}

type ExportConfig struct {
	Scale int `toml:"scale"`
}

type Config struct {
	Palette PaletteConfig `toml:"palette"`
	Disasm  DisasmConfig  `toml:"disasm"`
	Export  ExportConfig  `toml:"export"`
}

const DefaultFileMode = os.FileMode(0755)

var ConfigDir = sync.OnceValue(func() string {
	cfgdir, err := os.UserConfigDir()
	if err != nil {
		log.ModApp.Fatalf("failed to get user config directory: %v", err)
	}

	dir := filepath.Join(cfgdir, "nesinspect")
	if err := os.MkdirAll(dir, DefaultFileMode); err != nil {
		log.ModApp.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

var defaultConfig = Config{
	Palette: PaletteConfig{
		Colors: chr.DefaultPalette,
	},
	Disasm: DisasmConfig{
		MaxSteps:   cpu.DefaultMaxSteps,
		TraceReset: false,
	},
	Export: ExportConfig{
		Scale: 2,
	},
}

const cfgFilename = "config.toml"

func configPath(path string) string {
	if path != "" {
		return path
	}
	return filepath.Join(ConfigDir(), cfgFilename)
}

// LoadConfigOrDefault loads the configuration at path (or from the config
// directory if path is empty). Settings missing from the file keep their
// default value, and a missing file is not an error.
func LoadConfigOrDefault(path string) (Config, error) {
	path = configPath(path)

	cfg := defaultConfig
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		log.ModApp.DebugZ("no config file, using defaults").String("path", path).End()
		return defaultConfig, nil
	}
	if err != nil {
		return defaultConfig, fmt.Errorf("config %s: %w", path, err)
	}

	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		log.ModApp.WarnZ("unknown configuration keys").
			String("path", path).
			String("keys", strings.Join(keys, ",")).
			End()
	}

	if cfg.Export.Scale < 1 {
		return defaultConfig, fmt.Errorf("config %s: invalid export scale %d", path, cfg.Export.Scale)
	}
	return cfg, nil
}

// SaveConfig writes cfg at path (or in the config directory if path is
// empty).
func SaveConfig(cfg Config, path string) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath(path), buf, 0644)
}
