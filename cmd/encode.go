package cmd

import (
	"fmt"

	"github.com/pngstash/pngstash/chunk"
	"github.com/pngstash/pngstash/constants"
	"github.com/pngstash/pngstash/png"
	"github.com/spf13/cobra"
)

var (
	encodeType string
	encodeOut  string
)

func init() {
	encodeCmd.Flags().StringVarP(&encodeType, "type", "t", constants.GetChunkType(), "chunk type code to stash under")
	encodeCmd.Flags().StringVarP(&encodeOut, "output", "o", "", "write the result here instead of in place")
	rootCmd.AddCommand(encodeCmd)
}

var encodeCmd = &cobra.Command{
	Use:   "encode <png> <message>",
	Short: "Hide a message in a PNG",
	Long:  `Embeds the message in the PNG as a chunk of the given type, replacing any existing chunk of that type.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := encodeOut
		if out == "" {
			out = args[0]
		}
		return Encode(args[0], out, encodeType, args[1])
	},
}

// Encode embeds message in the PNG at in under a chunk of type typ and
// writes the result to out. Any existing chunk of that type is replaced.
func Encode(in, out, typ, message string) error {
	ct, err := chunk.TypeFromString(typ)
	if err != nil {
		return err
	}
	f, err := png.ReadFile(in)
	if err != nil {
		return err
	}
	// Drop any previous stash so the type stays unique in the file.
	f.RemoveChunk(typ)
	f.AppendChunk(chunk.New(ct, []byte(message)))
	if err := f.WriteFile(out); err != nil {
		return err
	}
	fmt.Printf("Stashed %v bytes in %v under %v\n", len(message), out, typ)
	return nil
}
