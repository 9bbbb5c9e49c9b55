package cmd

import (
	"fmt"
	"strings"

	"github.com/pngstash/pngstash/chunk"
	"github.com/pngstash/pngstash/png"
	"github.com/pngstash/pngstash/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(printCmd)
}

var printCmd = &cobra.Command{
	Use:   "print <png>",
	Short: "List every chunk in a PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Print(args[0])
	},
}

// Print writes one line per chunk: position, type code, payload size, CRC,
// the classification spelled out from the type's case bits, and a short
// text preview for ancillary chunks that decode as UTF-8.
func Print(path string) error {
	f, err := png.ReadFile(path)
	if err != nil {
		return err
	}
	fmt.Printf("%v: %v chunks\n", path, len(f.Chunks()))
	for i, c := range f.Chunks() {
		t := c.Type()
		fmt.Printf("%3d %v %8d bytes crc=%08x %v", i, t, c.Length(), c.CRC(), describeType(t))
		if txt, terr := c.Text(); terr == nil && !t.IsCritical() && c.Length() > 0 {
			fmt.Printf(" %q", txt[:util.Min(len(txt), 32)])
		}
		fmt.Println()
	}
	return nil
}

func describeType(t chunk.Type) string {
	parts := make([]string, 0, 4)
	if t.IsCritical() {
		parts = append(parts, "critical")
	} else {
		parts = append(parts, "ancillary")
	}
	if t.IsPublic() {
		parts = append(parts, "public")
	} else {
		parts = append(parts, "private")
	}
	if t.IsSafeToCopy() {
		parts = append(parts, "safe-to-copy")
	}
	if !t.IsValid() {
		parts = append(parts, "INVALID")
	}
	return strings.Join(parts, ",")
}
