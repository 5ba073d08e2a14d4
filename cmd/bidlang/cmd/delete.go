package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a convention from the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	setupLogging()
	ctx := context.Background()

	lib, database, err := openLibrary()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := lib.Delete(ctx, args[0]); err != nil {
		return err
	}

	fmt.Printf("deleted %q\n", args[0])
	return nil
}
