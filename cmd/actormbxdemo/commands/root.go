package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "actormbxdemo",
	Short: "Demonstrates the mailbox/dispatcher core",
	Long: `actormbxdemo is a small driver program exercising the
mailbox/dispatcher core: it wires up a dispatcher, creates an unbounded
FIFO and a bounded FIFO mailbox, and drives messages through them while
logging system and user message delivery.`,
}

var (
	logDir         string
	maxLogFiles    int
	maxLogFileSize int
)

func init() {
	rootCmd.PersistentFlags().StringVar(
		&logDir, "log-dir", "",
		"directory for log files (empty disables file logging)",
	)
	rootCmd.PersistentFlags().IntVar(
		&maxLogFiles, "max-log-files", 10,
		"maximum number of rotated log files to keep",
	)
	rootCmd.PersistentFlags().IntVar(
		&maxLogFileSize, "max-log-file-size", 20,
		"maximum log file size in MB before rotation",
	)

	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func expandHome(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return home + path[1:]
}
