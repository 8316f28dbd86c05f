package cli

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/devlink-labs/devlink/internal/branding"
	"github.com/devlink-labs/devlink/internal/clihome"
	"github.com/devlink-labs/devlink/internal/config"
	"github.com/devlink-labs/devlink/internal/pkgstore"
	"github.com/devlink-labs/devlink/internal/runtime"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Repair permissions and remove leftovers from interrupted installs")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment command packages need",
	Long: `Run diagnostic checks: node and npm availability, registry reachability,
and the health of the package cache in the CLI home.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		problems := runRuntimeCheck(cmd.Context(), w)
		problems += runRegistryCheck(cmd.Context(), w)
		problems += clihome.Check(w, env.CLIHome, doctorFix)

		if problems > 0 {
			return fmt.Errorf("%d problem(s) found", problems)
		}
		fmt.Fprintln(w, "\nNo problems found.")
		return nil
	},
}

func runRuntimeCheck(ctx context.Context, w io.Writer) int {
	fmt.Fprintln(w, "Runtime check:")
	problems := 0

	bin, version, err := runtime.DetectNode(ctx, runtime.MinNodeVersion)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] node: %v\n", err)
		problems++
	} else {
		fmt.Fprintf(w, "  [ OK ] node %s (%s)\n", version, bin)
	}

	npmPath, err := exec.LookPath("npm")
	if err != nil {
		fmt.Fprintln(w, "  [FAIL] npm not found on PATH")
		return problems + 1
	}
	npmVersion, err := pkgstore.NpmVersion(ctx, npmPath)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] npm: %v\n", err)
		return problems + 1
	}
	fmt.Fprintf(w, "  [ OK ] npm %s (%s)\n", npmVersion, npmPath)
	return problems
}

func runRegistryCheck(ctx context.Context, w io.Writer) int {
	fmt.Fprintln(w, "Registry check:")
	url := config.RegistryURL()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	latest, err := newResolver(url).ResolveLatest(ctx, branding.NPMName(), "")
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", url, err)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %s (%s@%s)\n", url, branding.NPMName(), latest)
	return 0
}
