package main

import (
	"fmt"

	"github.com/spf13/cobra"

	jwt "github.com/cybergodev/jwtcodec"
)

// algorithmsCmd represents the algorithms command
var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List supported algorithms",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, alg := range jwt.Algorithms() {
			fmt.Fprintln(cmd.OutOrStdout(), alg)
		}
	},
}

func init() {
	rootCmd.AddCommand(algorithmsCmd)
}
