package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/bep/debounce"
	"github.com/pngstash/pngstash/constants"
	"github.com/pngstash/pngstash/model"
	"github.com/pngstash/pngstash/png"
	"github.com/pngstash/pngstash/util"
	"github.com/spf13/cobra"
)

var (
	scanType string
	scanMax  int
)

func init() {
	scanCmd.Flags().StringVarP(&scanType, "type", "t", constants.GetChunkType(), "chunk type code to look for")
	scanCmd.Flags().IntVarP(&scanMax, "max", "n", 0, "stop after this many png files (0 = no limit)")
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Find PNGs under a directory that carry a hidden message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, scanned, err := Scan(args[0], scanType, scanMax)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Printf("%v: %v\n", r.Path, r.Message)
		}
		sizes := make([]int, 0, len(results))
		for _, r := range results {
			sizes = append(sizes, len(r.Message))
		}
		fmt.Printf("Scanned %v png files, found %v hidden messages (%v bytes)\n",
			scanned, len(results), util.Sum(sizes))
		return nil
	},
}

// Scan walks root for .png files and collects the messages stashed under
// chunk type typ, sorted by path. Unreadable or message-less files are
// skipped, not fatal. Also returns how many png files were looked at.
func Scan(root, typ string, maxNum int) ([]model.ScanResult, int, error) {
	paths, err := util.GatherAllPngPaths(root, maxNum)
	if err != nil {
		return nil, 0, err
	}

	// Progress prints are debounced so big trees don't flood the terminal.
	progress := debounce.New(100 * time.Millisecond)
	found := make(map[string]string)
	for i, path := range paths {
		done := i + 1
		progress(func() {
			fmt.Printf("...%v of %v files\n", done, len(paths))
		})

		f, err := png.ReadFile(path)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", path, err)
			continue
		}
		c, ok := f.ChunkByType(typ)
		if !ok {
			continue
		}
		msg, err := c.Text()
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", path, err)
			continue
		}
		found[path] = msg
	}

	keys := util.GetKeys(found)
	sort.Strings(keys)
	res := make([]model.ScanResult, 0, len(keys))
	for _, k := range keys {
		res = append(res, model.ScanResult{Path: k, Message: found[k]})
	}
	return res, len(paths), nil
}
