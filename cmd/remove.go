package cmd

import (
	"fmt"

	"github.com/pngstash/pngstash/constants"
	"github.com/pngstash/pngstash/png"
	"github.com/spf13/cobra"
)

var removeType string

func init() {
	removeCmd.Flags().StringVarP(&removeType, "type", "t", constants.GetChunkType(), "chunk type code to remove")
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove <png>",
	Short: "Delete the stash chunk from a PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Remove(args[0], removeType)
	},
}

// Remove deletes the first chunk of type typ from the PNG at path and
// rewrites the file.
func Remove(path, typ string) error {
	f, err := png.ReadFile(path)
	if err != nil {
		return err
	}
	removed, err := f.RemoveChunk(typ)
	if err != nil {
		return err
	}
	if err := f.WriteFile(path); err != nil {
		return err
	}
	fmt.Printf("Removed %v chunk (%v bytes) from %v\n", typ, removed.Length(), path)
	return nil
}
