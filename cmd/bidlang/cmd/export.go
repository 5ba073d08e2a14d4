package cmd

import (
	"context"

	"github.com/solatis/bidlang/internal/rules"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <name|id>",
	Short: "Render a stored convention's decision tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("format", "", "output format (text, json, yaml)")
	exportCmd.Flags().Int("indent", 0, "indent width for json and text output")
	exportCmd.Flags().StringP("output", "o", "", "write output to a file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	setupLogging()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		format, _ := cmd.Flags().GetString("format")
		cfg.OutputFormat = format
	}
	if cmd.Flags().Changed("indent") {
		indent, _ := cmd.Flags().GetInt("indent")
		cfg.OutputIndent = indent
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	format, err := rules.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}

	lib, database, err := openLibrary()
	if err != nil {
		return err
	}
	defer database.Close()

	c, err := lib.Resolve(ctx, args[0])
	if err != nil {
		return err
	}
	nodes, err := c.Nodes()
	if err != nil {
		return err
	}
	out, err := rules.Encode(nodes, format, cfg.OutputIndent)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("output")
	return writeArtifact(out, outPath)
}
