package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List conventions stored in the library",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	setupLogging()
	ctx := context.Background()

	lib, database, err := openLibrary()
	if err != nil {
		return err
	}
	defer database.Close()

	conventions, err := lib.List(ctx)
	if err != nil {
		return err
	}
	if len(conventions) == 0 {
		fmt.Println("library is empty")
		return nil
	}

	fmt.Printf("%-32s %-36s %s\n", "NAME", "ID", "UPDATED")
	for _, c := range conventions {
		fmt.Printf("%-32s %-36s %s\n", c.Name, c.ConventionID, c.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}
