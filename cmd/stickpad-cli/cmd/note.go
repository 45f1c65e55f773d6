package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat",
	Short: "Print the note to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		content, err := store.Load()
		if err != nil {
			return err
		}
		fmt.Print(content)
		return nil
	},
}

var writeCmd = &cobra.Command{
	Use:   "write [text]",
	Short: "Replace the note with the given text, or stdin when omitted",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var content string
		if len(args) > 0 {
			content = strings.Join(args, " ")
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			content = string(data)
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		return store.Save(content)
	},
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the note's storage location",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		fmt.Println(store.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(pathCmd)
}
