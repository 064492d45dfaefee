package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/recordctl/internal/logging"
	"github.com/danmuck/recordctl/internal/record"
)

const (
	OutputHex    = "hex"
	OutputBase64 = "base64"
)

// Config is the resolved recordctl configuration.
type Config struct {
	Opcodes  record.OpcodeTable
	Output   string
	LogLevel string
}

type fileConfig struct {
	Output   string      `toml:"output"`
	LogLevel string      `toml:"log_level"`
	Opcodes  fileOpcodes `toml:"opcodes"`
}

type fileOpcodes struct {
	Initialize        int `toml:"initialize"`
	Write             int `toml:"write"`
	SetAuthority      int `toml:"set_authority"`
	CloseAccount      int `toml:"close_account"`
	InitializeDynamic int `toml:"initialize_dynamic"`
	WriteDynamic      int `toml:"write_dynamic"`
}

func Default() Config {
	return Config{
		Opcodes:  record.DefaultOpcodes(),
		Output:   OutputHex,
		LogLevel: "info",
	}
}

// Load reads path and applies every defined key on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load recordctl config: %w", err)
	}

	if meta.IsDefined("output") {
		cfg.Output = strings.ToLower(strings.TrimSpace(raw.Output))
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	overrides := []struct {
		key string
		val int
		dst *record.Opcode
	}{
		{"initialize", raw.Opcodes.Initialize, &cfg.Opcodes.Initialize},
		{"write", raw.Opcodes.Write, &cfg.Opcodes.Write},
		{"set_authority", raw.Opcodes.SetAuthority, &cfg.Opcodes.SetAuthority},
		{"close_account", raw.Opcodes.CloseAccount, &cfg.Opcodes.CloseAccount},
		{"initialize_dynamic", raw.Opcodes.InitializeDynamic, &cfg.Opcodes.InitializeDynamic},
		{"write_dynamic", raw.Opcodes.WriteDynamic, &cfg.Opcodes.WriteDynamic},
	}
	for _, o := range overrides {
		if !meta.IsDefined("opcodes", o.key) {
			continue
		}
		if o.val < 0 || o.val > 0xff {
			return Config{}, fmt.Errorf("opcodes.%s out of range: %d", o.key, o.val)
		}
		*o.dst = record.Opcode(o.val)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	switch cfg.Output {
	case OutputHex, OutputBase64:
	default:
		return fmt.Errorf("recordctl config output must be %s or %s, got %q", OutputHex, OutputBase64, cfg.Output)
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok && cfg.LogLevel != "" {
		return fmt.Errorf("recordctl config unknown log_level %q", cfg.LogLevel)
	}
	if err := cfg.Opcodes.Validate(); err != nil {
		return fmt.Errorf("recordctl config: %w", err)
	}
	return nil
}

// Codec returns a codec bound to the configured opcode table.
func (c Config) Codec() (*record.Codec, error) {
	return record.NewCodec(c.Opcodes)
}

func toFile(cfg Config) fileConfig {
	return fileConfig{
		Output:   cfg.Output,
		LogLevel: cfg.LogLevel,
		Opcodes: fileOpcodes{
			Initialize:        int(cfg.Opcodes.Initialize),
			Write:             int(cfg.Opcodes.Write),
			SetAuthority:      int(cfg.Opcodes.SetAuthority),
			CloseAccount:      int(cfg.Opcodes.CloseAccount),
			InitializeDynamic: int(cfg.Opcodes.InitializeDynamic),
			WriteDynamic:      int(cfg.Opcodes.WriteDynamic),
		},
	}
}
