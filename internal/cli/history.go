package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/perfkit/boostd/internal/domain"
	"github.com/spf13/cobra"
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum windows to show")
	rootCmd.AddCommand(historyCmd)
}

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent hint windows",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	var windows []domain.HintWindow
	if err := apiGet(fmt.Sprintf("/api/history?limit=%d", historyLimit), &windows); err != nil {
		return err
	}

	if len(windows) == 0 {
		fmt.Println("No hint windows recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ISSUED\tWORKLOAD\tHINT\tKIND\tDURATION\tREVERTED")
	for _, win := range windows {
		reverted := "pending"
		if win.RevertedAt != nil {
			reverted = win.RevertedAt.Format("15:04:05")
		} else if win.Kind == domain.HintBoost {
			reverted = "self-expire"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%dms\t%s\n",
			win.IssuedAt.Format("15:04:05"),
			win.Workload,
			win.Hint,
			win.Kind,
			win.DurationMs,
			reverted,
		)
	}
	return w.Flush()
}
