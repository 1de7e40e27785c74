package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zhubert/parley/internal/logger"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove parley log files",
	Long: `Removes the debug log files parley writes to /tmp.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(cmd.OutOrStdout(), os.Stdin, skipConfirm)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(out io.Writer, input io.Reader, yes bool) error {
	logs, err := filepath.Glob("/tmp/parley-*.log")
	if err != nil {
		return fmt.Errorf("error finding log files: %w", err)
	}

	if len(logs) == 0 {
		fmt.Fprintln(out, "Nothing to clean.")
		return nil
	}

	fmt.Fprintln(out, "This will remove:")
	for _, path := range logs {
		fmt.Fprintf(out, "  - %s\n", path)
	}

	// Confirm unless --yes flag is set
	if !yes && !confirm(out, input, "Continue?") {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Removed %d log file(s).\n", logsCleared)
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(out io.Writer, input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
