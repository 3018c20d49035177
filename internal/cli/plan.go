package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vvka-141/schemaload/internal/db"
	"github.com/vvka-141/schemaload/internal/logging"
	"github.com/vvka-141/schemaload/internal/schemafile"
	"github.com/vvka-141/schemaload/internal/services"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "List the statements apply would run, without connecting",
	Long: `Plan resolves and splits the schema file exactly as apply does and prints
the numbered statements. No connection string is needed and the database is
never contacted.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	registerSchemaFlags(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}

	source, err := schemafile.NewOSSource()
	if err != nil {
		return err
	}
	loader := services.NewLoaderService(db.NewConnector, source, logging.NewNullLogger())

	plan, err := loader.Plan(schemaPath(fileCfg))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	total := len(plan.Statements)
	fmt.Fprintf(out, "Schema: %s\n", plan.Path)
	fmt.Fprintf(out, "SHA-256: %s (content %s)\n\n", plan.Fingerprint.Raw, plan.Fingerprint.Content)
	for i, stmt := range plan.Statements {
		fmt.Fprintf(out, "-- [%d/%d]\n%s\n\n", i+1, total, stmt)
	}
	fmt.Fprintf(out, "%d statement(s)\n", total)
	return nil
}
