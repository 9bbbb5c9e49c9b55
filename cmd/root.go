package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pngstash",
	Short: "Hide and recover messages in PNG chunks",
	Long: `pngstash embeds secret text in PNG files as private ancillary chunks
and gets it back out. The image keeps rendering everywhere; only pngstash
knows where to look.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
