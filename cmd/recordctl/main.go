package main

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danmuck/recordctl/internal/config"
	"github.com/danmuck/recordctl/internal/logging"
	"github.com/danmuck/recordctl/internal/observability"
	"github.com/danmuck/recordctl/internal/record"
	"github.com/rs/zerolog"
)

const usage = `usage: recordctl [-config path] <command> [flags]

commands:
  encode [-offset N] [-data S | -data-hex H] [-format hex|base64] <kind>
  decode (-hex H | -base64 B)
  decode-instruction (-hex H | -base64 B)
  layout <kind>
  config-template [-output path] [-force]
`

var errUsage = errors.New("invalid usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		fmt.Fprintf(os.Stderr, "recordctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	global := flag.NewFlagSet("recordctl", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	configPath := global.String("config", "", "recordctl TOML config")
	if err := global.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	rest := global.Args()
	if len(rest) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger := observability.InitLogger("recordctl")
	if lvl, ok := logging.ParseLevel(cfg.LogLevel); ok && os.Getenv(logging.EnvLogLevel) == "" {
		zerolog.SetGlobalLevel(lvl)
	}
	logger.Debug().Str("command", rest[0]).Str("config", *configPath).Msg("recordctl start")

	switch rest[0] {
	case "encode":
		return runEncode(cfg, rest[1:], out)
	case "decode":
		return runDecode(rest[1:], out)
	case "decode-instruction":
		return runDecodeInstruction(cfg, rest[1:], out)
	case "layout":
		return runLayout(rest[1:], out)
	case "config-template":
		return runConfigTemplate(rest[1:], out)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, rest[0])
	}
}

func runEncode(cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	offset := fs.Uint64("offset", 0, "write offset")
	text := fs.String("data", "", "payload text (UTF-8)")
	rawHex := fs.String("data-hex", "", "payload bytes as hex")
	format := fs.String("format", cfg.Output, "output format: hex|base64")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: encode takes exactly one kind", errUsage)
	}
	kind, err := record.ParseKind(fs.Arg(0))
	if err != nil {
		return err
	}
	if *text != "" && *rawHex != "" {
		return fmt.Errorf("%w: -data and -data-hex are exclusive", errUsage)
	}
	data := []byte(*text)
	if *rawHex != "" {
		data, err = hex.DecodeString(strings.TrimSpace(*rawHex))
		if err != nil {
			return fmt.Errorf("decode -data-hex: %w", err)
		}
	}

	ins, err := buildInstruction(kind, *offset, data)
	if err != nil {
		return err
	}
	codec, err := cfg.Codec()
	if err != nil {
		return err
	}
	encoded, err := codec.Encode(ins)
	if err != nil {
		return err
	}
	switch strings.ToLower(*format) {
	case config.OutputHex:
		_, err = fmt.Fprintln(out, hex.EncodeToString(encoded))
	case config.OutputBase64:
		_, err = fmt.Fprintln(out, base64.StdEncoding.EncodeToString(encoded))
	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, *format)
	}
	return err
}

func buildInstruction(kind record.Kind, offset uint64, data []byte) (record.Instruction, error) {
	switch kind {
	case record.KindInitialize:
		return record.Initialize{}, nil
	case record.KindWrite:
		return record.Write{Offset: offset, Data: data}, nil
	case record.KindSetAuthority:
		return record.SetAuthority{}, nil
	case record.KindCloseAccount:
		return record.CloseAccount{}, nil
	case record.KindInitializeDynamic:
		return record.InitializeDynamic{}, nil
	case record.KindWriteDynamic:
		return record.WriteDynamic{Offset: offset, Data: data}, nil
	default:
		return nil, fmt.Errorf("%s is not an instruction", kind)
	}
}

type recordView struct {
	Version   uint8         `json:"version"`
	Authority record.Pubkey `json:"authority"`
	Data      string        `json:"data"`
}

type instructionView struct {
	Kind   string  `json:"kind"`
	Opcode uint8   `json:"opcode"`
	Offset *uint64 `json:"offset,omitempty"`
	Data   *string `json:"data,omitempty"`
}

func runDecode(args []string, out io.Writer) error {
	raw, err := readInput("decode", args)
	if err != nil {
		return err
	}
	rec, err := record.DecodeRecordData(raw)
	if err != nil {
		return err
	}
	return writeJSON(out, recordView{
		Version:   rec.Version,
		Authority: rec.Authority,
		Data:      hex.EncodeToString(rec.Data[:]),
	})
}

func runDecodeInstruction(cfg config.Config, args []string, out io.Writer) error {
	raw, err := readInput("decode-instruction", args)
	if err != nil {
		return err
	}
	codec, err := cfg.Codec()
	if err != nil {
		return err
	}
	ins, err := codec.DecodeInstruction(raw)
	if err != nil {
		return err
	}
	view := instructionView{Kind: ins.Kind().String(), Opcode: raw[0]}
	switch v := ins.(type) {
	case record.Write:
		view.Offset, view.Data = writeView(v.Offset, v.Data)
	case record.WriteDynamic:
		view.Offset, view.Data = writeView(v.Offset, v.Data)
	}
	return writeJSON(out, view)
}

func writeView(offset uint64, data []byte) (*uint64, *string) {
	encoded := hex.EncodeToString(data)
	return &offset, &encoded
}

func readInput(name string, args []string) ([]byte, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	rawHex := fs.String("hex", "", "input bytes as hex")
	rawB64 := fs.String("base64", "", "input bytes as base64")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	switch {
	case *rawHex != "" && *rawB64 != "":
		return nil, fmt.Errorf("%w: -hex and -base64 are exclusive", errUsage)
	case *rawHex != "":
		b, err := hex.DecodeString(strings.TrimSpace(*rawHex))
		if err != nil {
			return nil, fmt.Errorf("decode -hex: %w", err)
		}
		return b, nil
	case *rawB64 != "":
		b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(*rawB64))
		if err != nil {
			return nil, fmt.Errorf("decode -base64: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %s needs -hex or -base64", errUsage, name)
	}
}

func runLayout(args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: layout takes exactly one kind", errUsage)
	}
	kind, err := record.ParseKind(args[0])
	if err != nil {
		return err
	}
	for _, spec := range record.Layout(kind) {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", spec.Name, spec.Type); err != nil {
			return err
		}
	}
	return nil
}

func runConfigTemplate(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("config-template", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	output := fs.String("output", "", "write template to path instead of stdout")
	force := fs.Bool("force", false, "overwrite existing config file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *output == "" {
		template, err := config.Template(config.Default())
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, template)
		return err
	}
	if err := config.WriteTemplate(*output, *force); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "wrote config template to %s\n", *output)
	return err
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
