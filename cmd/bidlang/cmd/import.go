package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Compile a convention file and store it in the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("name", "", "library name for the convention (defaults to the file name)")
}

func runImport(cmd *cobra.Command, args []string) error {
	setupLogging()
	ctx := context.Background()

	lib, database, err := openLibrary()
	if err != nil {
		return err
	}
	defer database.Close()

	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	c, err := lib.Save(ctx, name, path, source)
	if err != nil {
		return err
	}

	fmt.Printf("imported %q (%s)\n", c.Name, c.ConventionID)
	return nil
}
