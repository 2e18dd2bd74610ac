package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the wiztriage version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("wiztriage", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
