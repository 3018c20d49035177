package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "schemaload",
	Short: "Apply a SQL schema file to PostgreSQL one statement at a time",
	Long: `schemaload reads a SQL schema file, splits it on semicolons and runs each
statement in file order against the database named by the connection string.

A failing statement is reported and the run moves on to the next one. Running
schemaload with no subcommand is the same as "schemaload apply".

Connection:
  SCHEMALOAD_CONNECTION_STRING  PostgreSQL connection string (URI or ADO.NET)
  DATABASE_URL                  Used when SCHEMALOAD_CONNECTION_STRING is unset
  A .env file in the working directory is loaded first.

Exit Codes:
  0  - Pass completed (individual statements may have failed)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Missing connection string or invalid configuration
  11 - Database connection failed
  14 - Schema file missing or unreadable`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runApply,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	registerApplyFlags(rootCmd)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
