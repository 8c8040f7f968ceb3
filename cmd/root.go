/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/ifcdb/internal/ioconfig"
	"github.com/gnames/ifcdb/internal/iofs"
	"github.com/gnames/ifcdb/internal/iologger"
	ifcdb "github.com/gnames/ifcdb/pkg"
	"github.com/gnames/ifcdb/pkg/config"
	"github.com/spf13/cobra"
)

var (
	homeDir string
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", ifcdb.Version, ifcdb.Build),
		Use:     "ifcdb",
		Short:   "IFCdb imports IFC building models into PostgreSQL",
		Long: `IFCdb reads IFC (ISO 10303-21) building models and stores storeys,
element types, building elements, spaces, properties, quantities,
materials, space boundaries and openings in a PostgreSQL database.

Features:
  - Schema Management: create and migrate tables
  - Import: atomic import of IFC2X3, IFC4 and IFC4X3 files
  - Projects: list and delete imported projects
  - Optimization: purge deleted projects, refresh statistics

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (IFCDB_*)
  3. Config file (~/.config/ifcdb/config.yaml)
  4. Built-in defaults

Environment variables:
  IFCDB_DATABASE_HOST       PostgreSQL host
  IFCDB_DATABASE_PORT       PostgreSQL port
  IFCDB_DATABASE_USER       PostgreSQL user
  IFCDB_DATABASE_PASSWORD   PostgreSQL password
  IFCDB_DATABASE_DATABASE   Database name
  IFCDB_IMPORT_BATCH_SIZE   Elements per batch
  IFCDB_LOG_LEVEL           Log level (debug/info/warn/error)
  IFCDB_JOBS_NUMBER         Files imported concurrently`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for ifcdb")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getImportCmd(),
		getListCmd(),
		getDeleteCmd(),
		getOptimizeCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// hardcoded defaults until the user's config is read
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	loaded, err := ioconfig.Load(homeDir)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	cfg.Update(loaded.ToOptions())
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))
	return nil
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
