package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/maylang/may/internal/config"
	"github.com/maylang/may/internal/errors"
	"github.com/maylang/may/internal/output"
	"github.com/maylang/may/internal/pack"
)

var (
	newIDFlag       string
	newSlugFlag     string
	newScopeFlag    string
	newRiskFlag     string
	newOwnerFlag    string
	newRollbackFlag string
	newDirFlag      string
)

var riskLevels = []string{"low", "medium", "high", "critical"}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new change package from the template",
	Long: `Create a new change package (.may.md) from the built-in template.
The rendered file passes validation as-is; fill in the placeholder prose
before committing.`,
	Example: `  may new --id MC-0001 --slug auth-sessions --scope fullstack --risk low --owner "team-alpha"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNewCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVar(&newIDFlag, "id", "", `Change ID, e.g. "MC-0001"`)
	newCmd.Flags().StringVar(&newSlugFlag, "slug", "", `Short slug, e.g. "auth-sessions"`)
	newCmd.Flags().StringVar(&newScopeFlag, "scope", "", `Scope of the change, e.g. "backend", "fullstack"`)
	newCmd.Flags().StringVar(&newRiskFlag, "risk", "", "Risk level: low, medium, high, or critical")
	newCmd.Flags().StringVar(&newOwnerFlag, "owner", "", "Team or person responsible")
	newCmd.Flags().StringVar(&newRollbackFlag, "rollback", "revert_commit", "Rollback strategy")
	newCmd.Flags().StringVar(&newDirFlag, "dir", "", "Directory for the new package (default \"maylang\")")

	for _, required := range []string{"id", "slug", "scope", "risk", "owner"} {
		_ = newCmd.MarkFlagRequired(required)
	}
}

func runNewCommand(cmd *cobra.Command) error {
	if !slices.Contains(riskLevels, newRiskFlag) {
		return errors.NewArgumentError(
			fmt.Sprintf("invalid risk level %q", newRiskFlag),
			"Use one of: low, medium, high, critical")
	}

	dir := newDirFlag
	if dir == "" {
		if cfg, err := config.Load(""); err == nil {
			dir = cfg.Dir
		} else {
			dir = "maylang"
		}
	}

	fields := pack.TemplateFields{
		ID:       newIDFlag,
		Slug:     newSlugFlag,
		Scope:    newScopeFlag,
		Risk:     newRiskFlag,
		Owner:    newOwnerFlag,
		Rollback: newRollbackFlag,
	}

	content, err := pack.Render(fields)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "rendering template")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, fmt.Sprintf("creating directory %s", dir))
	}

	target := filepath.Join(dir, fields.Filename())
	if _, err := os.Stat(target); err == nil {
		return errors.NewArgumentError(
			fmt.Sprintf("%s already exists", target),
			"Pick a different --id or --slug, or remove the existing file")
	}

	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, fmt.Sprintf("writing %s", target))
	}

	output.Success(cmd.OutOrStdout(), "Created %s", target)
	return nil
}
