package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jkalina/flowreplay/internal/logging"
	"github.com/jkalina/flowreplay/internal/schema"
)

// SchemaHelperOptions configure one schema-helper run.
type SchemaHelperOptions struct {
	Input      string
	Address    string
	Port       int
	Type       string
	SchemaFile string
	ConfigFile string
	Overwrite  bool

	Out io.Writer
}

// RunSchemaHelper turns a collector field overview into a ClickHouse
// table schema and a matching collector configuration, written to the
// two output files.
func RunSchemaHelper(opts SchemaHelperOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	inputType := strings.ToLower(opts.Type)
	if inputType != "udp" && inputType != "tcp" {
		return fmt.Errorf("input protocol type %q is not supported; use udp or tcp", opts.Type)
	}
	if opts.Port <= 0 || opts.Port >= 1<<16 {
		return fmt.Errorf("%d is not a valid port number", opts.Port)
	}

	overview, err := schema.LoadOverview(opts.Input)
	if err != nil {
		return err
	}

	log, err := logging.NewLogger(logging.LogLevelInfo, "")
	if err != nil {
		return err
	}
	defer log.Close()
	fields := overview.BuildFields(log)

	schemaDoc := schema.GenerateSchema(fields)
	configDoc := schema.GenerateConfig(schema.RenderOptions{
		Type:    inputType,
		Port:    opts.Port,
		Address: opts.Address,
	}, fields)

	if err := writeDocument(opts.SchemaFile, schemaDoc, opts.Overwrite); err != nil {
		return err
	}
	fmt.Fprintf(out, "Schema has been saved to: %s\n", opts.SchemaFile)

	if err := writeDocument(opts.ConfigFile, configDoc, opts.Overwrite); err != nil {
		return err
	}
	fmt.Fprintf(out, "Config has been saved to: %s\n", opts.ConfigFile)

	fmt.Fprintln(out, "You may use the generated schema and config as a starting point to run a collector with a ClickHouse database.")
	return nil
}

func writeDocument(path, content string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists; use --overwrite to replace it", path)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
