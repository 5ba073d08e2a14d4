package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/solatis/bidlang/internal/core/watch"
	"github.com/solatis/bidlang/internal/parser"
	"github.com/solatis/bidlang/internal/rules"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a convention file to a decision tree",
	Long: `Compile reads a convention file, resolves its rules into a nested
decision tree, and writes the tree to stdout or a file. With --watch the
command keeps running and recompiles whenever the source file changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().String("format", "", "output format (text, json, yaml)")
	compileCmd.Flags().Int("indent", 0, "indent width for json and text output")
	compileCmd.Flags().StringP("output", "o", "", "write output to a file instead of stdout")
	compileCmd.Flags().Bool("watch", false, "recompile whenever the source file changes")
}

func runCompile(cmd *cobra.Command, args []string) error {
	setupLogging()

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
	compiler := rules.NewCompiler()
	compiler.MaxDepth = cfg.MaxAuctionDepth

	outPath, _ := cmd.Flags().GetString("output")
	watchMode, _ := cmd.Flags().GetBool("watch")

	if !watchMode {
		return compileFile(args[0], compiler, format, cfg.OutputIndent, outPath)
	}
	return watchAndCompile(args[0], compiler, format, cfg.OutputIndent, outPath, cfg.WatchDebounce)
}

func compileFile(path string, compiler *rules.Compiler, format rules.Format, indent int, outPath string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	groups, err := parser.ParseConvention(path, source)
	if err != nil {
		return err
	}
	nodes, err := compiler.Compile(groups)
	if err != nil {
		return err
	}
	out, err := rules.Encode(nodes, format, indent)
	if err != nil {
		return err
	}

	return writeArtifact(out, outPath)
}

func writeArtifact(out []byte, outPath string) error {
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	if outPath == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(outPath, out, 0644)
}

// watchAndCompile keeps recompiling until interrupted. Compile failures
// are logged rather than fatal; the next save gets another chance.
func watchAndCompile(path string, compiler *rules.Compiler, format rules.Format, indent int, outPath string, debounce time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.Default()

	if err := compileFile(path, compiler, format, indent, outPath); err != nil {
		logger.Error("compile failed", "path", path, "error", err)
	} else {
		logger.Info("compiled", "path", path)
	}

	w, err := watch.New(path, debounce, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Start(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return nil

		case event, ok := <-w.Events():
			if !ok {
				return nil
			}
			if event.Op == watch.OpRemove {
				logger.Warn("source file removed, waiting for it to return", "path", event.Path)
				continue
			}
			if err := compileFile(path, compiler, format, indent, outPath); err != nil {
				logger.Error("compile failed", "path", path, "error", err)
				continue
			}
			logger.Info("recompiled", "path", path)
		}
	}
}
