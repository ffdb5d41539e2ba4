package cli

import (
	"github.com/perfkit/boostd/internal/app/boost"
	"github.com/perfkit/boostd/internal/tui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live dashboard of the scheduler state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(func() (boost.State, error) {
			var st boost.State
			err := apiGet("/api/status", &st)
			return st, err
		})
	},
}
