package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vugu/pagerouter/rgen"
)

func genCmd() *cobra.Command {

	var (
		packageName string
		recursive   bool
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "gen [dir...]",
		Short: "Generate 0_routes_vgen.go route tables",
		Long: `Generate a route table for each directory given (default ".").

Each .vugu file becomes an exact route: index.vugu at "/", page-a.vugu
at "/page-a" rendering the PageA component.`,
		RunE: func(cmd *cobra.Command, args []string) error {

			if len(args) == 0 {
				args = []string{"."} // default to current dir
			}

			if packageName != "" && len(args) > 1 {
				return errors.New("-p is only valid with a single directory, either don't use -p or only specify one dir")
			}

			logger := newLogger(quiet)

			for _, arg := range args {

				dir, err := filepath.Abs(arg)
				if err != nil {
					return fmt.Errorf("converting %q to absolute path: %w", arg, err)
				}

				logger.Info("processing routes", "dir", arg)

				err = rgen.New().
					SetDir(dir).
					SetPackageName(packageName).
					SetRecursive(recursive).
					SetLogger(logger).
					Generate()
				if err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&packageName, "package", "p", "", "The full package name to use.  If unspecified auto-detection will be attempted using go.mod")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Recursively process subdirectories")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print information upon error")

	return cmd
}
