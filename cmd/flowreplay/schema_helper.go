package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jkalina/flowreplay/internal/app"
)

type schemaHelperFlags struct {
	input      string
	address    string
	port       int
	inputType  string
	schemaFile string
	configFile string
	overwrite  bool
}

func newSchemaHelperCmd() *cobra.Command {
	flags := &schemaHelperFlags{}

	cmd := &cobra.Command{
		Use:   "schema-helper",
		Short: "Generate a ClickHouse schema and collector config from a field overview",
		Long: `Generate ClickHouse onboarding documents from the field overview a
collector produced while sampling live flow data: a CREATE TABLE
schema and a matching collector configuration with a column per
discovered field.`,
		Example: `  # Generate schema.sql and config.xml for a TCP collector on port 4739
  flowreplay schema-helper --input overview.json -p 4739 -t tcp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.input == "" {
				return fmt.Errorf("required flag --input not set")
			}
			return app.RunSchemaHelper(app.SchemaHelperOptions{
				Input:      flags.input,
				Address:    flags.address,
				Port:       flags.port,
				Type:       flags.inputType,
				SchemaFile: flags.schemaFile,
				ConfigFile: flags.configFile,
				Overwrite:  flags.overwrite,
			})
		},
	}

	cmd.Flags().StringVar(&flags.input, "input", "", "Field overview JSON produced by the collector (required)")
	cmd.Flags().StringVarP(&flags.address, "address", "a", "", "The local IP address of the input plugin; empty = all interfaces")
	cmd.Flags().IntVarP(&flags.port, "port", "p", 4739, "The local port of the input plugin")
	cmd.Flags().StringVarP(&flags.inputType, "type", "t", "udp", "The input protocol type: udp|tcp")
	cmd.Flags().StringVarP(&flags.schemaFile, "schema-file", "s", "schema.sql", "The output schema file")
	cmd.Flags().StringVarP(&flags.configFile, "config-file", "c", "config.xml", "The output config file")
	cmd.Flags().BoolVarP(&flags.overwrite, "overwrite", "o", false, "Overwrite the output files if they already exist")

	return cmd
}
