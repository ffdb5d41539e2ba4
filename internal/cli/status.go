package cli

import (
	"fmt"
	"time"

	"github.com/perfkit/boostd/internal/app/boost"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the scheduler state",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	var st boost.State
	if err := apiGet("/api/status", &st); err != nil {
		return err
	}

	if st.Active {
		fmt.Printf("State:       ACTIVE (window %s)\n", st.WindowID)
	} else {
		fmt.Println("State:       IDLE")
	}
	if st.LastIssuedAt != nil {
		fmt.Printf("Last window: %s for %dms\n", st.LastIssuedAt.Format(time.RFC3339), st.LastDurationMs)
	}
	fmt.Printf("Issued:      %d\n", st.TotalIssued)
	fmt.Printf("Dropped:     %d\n", st.TotalDropped)
	if st.SinkAvailable {
		fmt.Println("Hint sink:   available")
	} else {
		fmt.Println("Hint sink:   unavailable")
	}
	return nil
}
