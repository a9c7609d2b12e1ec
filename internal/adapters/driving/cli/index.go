package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage document indexes",
}

var indexListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted document indexes",
	Args:  cobra.NoArgs,
	RunE:  runIndexList,
}

var indexRemoveCmd = &cobra.Command{
	Use:     "rm [name]",
	Aliases: []string{"remove"},
	Short:   "Remove a document index",
	Args:    cobra.ExactArgs(1),
	RunE:    runIndexRemove,
}

func init() {
	indexCmd.AddCommand(indexListCmd, indexRemoveCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexList(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	names, err := indexService.List(context.Background())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		cmd.Println("No indexes.")
		return nil
	}
	for _, name := range names {
		cmd.Println(name)
	}
	return nil
}

func runIndexRemove(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	if err := indexService.Remove(context.Background(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Removed %s\n", args[0])
	return nil
}
