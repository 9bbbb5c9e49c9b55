package cmd

import (
	"fmt"

	"github.com/pngstash/pngstash/constants"
	"github.com/pngstash/pngstash/png"
	"github.com/spf13/cobra"
)

var decodeType string

func init() {
	decodeCmd.Flags().StringVarP(&decodeType, "type", "t", constants.GetChunkType(), "chunk type code to read")
	rootCmd.AddCommand(decodeCmd)
}

var decodeCmd = &cobra.Command{
	Use:   "decode <png>",
	Short: "Recover the hidden message from a PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := Decode(args[0], decodeType)
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	},
}

// Decode returns the message hidden in the PNG at path under chunk type
// typ.
func Decode(path, typ string) (string, error) {
	f, err := png.ReadFile(path)
	if err != nil {
		return "", err
	}
	c, ok := f.ChunkByType(typ)
	if !ok {
		return "", fmt.Errorf("%w: %q in %v", png.ErrNoChunk, typ, path)
	}
	return c.Text()
}
