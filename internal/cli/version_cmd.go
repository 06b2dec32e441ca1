package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maylang/may/internal/bump"
	"github.com/maylang/may/internal/config"
	"github.com/maylang/may/internal/errors"
	"github.com/maylang/may/internal/version"
)

var versionBumpFlag string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show tool version or bump the project version",
	Long: `Without flags, prints the may tool version. With --bump, rewrites the
version field in the nearest .maylang.yml (patch, minor, or major).`,
	Example: `  may version
  may version --bump patch`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersionCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().StringVar(&versionBumpFlag, "bump", "", "Bump the project version: patch, minor, or major")
}

func runVersionCommand(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	if versionBumpFlag == "" {
		fmt.Fprintf(out, "may %s (commit %s, built %s)\n", version.Version, version.Commit, version.BuildDate)
		return nil
	}

	part, err := bump.ParsePart(versionBumpFlag)
	if err != nil {
		return errors.NewArgumentError(err.Error(),
			"Use --bump patch, --bump minor, or --bump major")
	}

	path, err := config.FindProjectConfig("")
	if err != nil {
		return errors.NewConfigError(err.Error(),
			fmt.Sprintf("Create a %s with a version: \"0.1.0\" line at the project root", config.ProjectConfigName))
	}

	result, err := bump.File(path, part)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Configuration, "bumping version",
			fmt.Sprintf("Ensure %s contains a version: \"x.y.z\" line", path))
	}

	fmt.Fprintf(out, "Bumped version: %s → %s  (%s)\n", result.Old, result.New, result.Path)
	return nil
}
