package cmd

import (
	"bytes"
	"fmt"
	imagepng "image/png"

	"github.com/kbinani/screenshot"
	"github.com/pngstash/pngstash/chunk"
	"github.com/pngstash/pngstash/constants"
	"github.com/pngstash/pngstash/png"
	"github.com/spf13/cobra"
)

var (
	captureOut     string
	captureMessage string
	captureType    string
	captureDisplay int
)

func init() {
	captureCmd.Flags().StringVarP(&captureOut, "output", "o", "capture.png", "where to write the screenshot")
	captureCmd.Flags().StringVarP(&captureMessage, "message", "m", "", "message to stash in the screenshot right away")
	captureCmd.Flags().StringVarP(&captureType, "type", "t", constants.GetChunkType(), "chunk type code to stash under")
	captureCmd.Flags().IntVarP(&captureDisplay, "display", "d", 0, "display number to capture")
	rootCmd.AddCommand(captureCmd)
}

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Screenshot a display into a carrier PNG",
	Long:  `Grabs a screenshot as a fresh carrier PNG, optionally stashing a message in it in the same step.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Capture(captureOut, captureType, captureMessage, captureDisplay)
	},
}

// Capture writes a screenshot of the given display to out as a PNG. A
// non-empty message is embedded under chunk type typ before writing.
func Capture(out, typ, message string, display int) error {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return fmt.Errorf("no active displays")
	}
	if display < 0 || display >= n {
		return fmt.Errorf("display %d not available (have %d)", display, n)
	}

	img, err := screenshot.CaptureRect(screenshot.GetDisplayBounds(display))
	if err != nil {
		return fmt.Errorf("capturing display %d: %w", display, err)
	}

	var buf bytes.Buffer
	if err := imagepng.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding screenshot: %w", err)
	}

	// Run the encoder's output through our own container code, both to
	// stash the message and to re-verify every chunk before it hits disk.
	f, err := png.ReadFrom(&buf)
	if err != nil {
		return err
	}
	if message != "" {
		ct, err := chunk.TypeFromString(typ)
		if err != nil {
			return err
		}
		f.AppendChunk(chunk.New(ct, []byte(message)))
	}
	if err := f.WriteFile(out); err != nil {
		return err
	}

	fmt.Printf("Captured display %v to %v (%v chunks)\n", display, out, len(f.Chunks()))
	return nil
}
