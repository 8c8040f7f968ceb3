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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/ifcdb/internal/ioextract"
	"github.com/gnames/ifcdb/internal/ioimport"
	"github.com/gnames/ifcdb/internal/iostore"
	"github.com/gnames/ifcdb/pkg/config"
	"github.com/gnames/ifcdb/pkg/errcode"
	"github.com/gnames/ifcdb/pkg/model"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	var (
		reimport  bool
		batchSize int
		jobs      int
		format    string
	)

	importCmd := &cobra.Command{
		Use:   "import <file.ifc>...",
		Short: "Import IFC files into the database",
		Long: `Import IFC (STEP) files into the database.

Every file is imported in its own transaction. If anything fails, or
the command is interrupted, nothing of that file is written.

A file whose content was already imported is rejected. Use --reimport
to replace the earlier project, it is soft-deleted.

Several files are imported concurrently, see --jobs.

Examples:
  ifcdb import plant.ifc
  ifcdb import -r plant.ifc
  ifcdb import -j 8 -b 1000 models/*.ifc
  ifcdb import --format json plant.ifc`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runImport(cmd, args, reimport, batchSize, jobs, format)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	importCmd.Flags().BoolVarP(&reimport, "reimport", "r", false,
		"replace projects imported from the same file content")
	importCmd.Flags().IntVarP(&batchSize, "batch-size", "b", 0,
		"building elements written per batch")
	importCmd.Flags().IntVarP(&jobs, "jobs", "j", 0,
		"number of files imported concurrently")
	importCmd.Flags().StringVarP(&format, "format", "f", "text",
		"output format: text, json or yaml")

	return importCmd
}

// importOptions converts explicitly set flags to config options.
func importOptions(
	cmd *cobra.Command,
	reimport bool,
	batchSize, jobs int,
) []config.Option {
	var res []config.Option
	if cmd.Flags().Changed("reimport") {
		res = append(res, config.OptImportReimport(reimport))
	}
	if cmd.Flags().Changed("batch-size") {
		res = append(res, config.OptImportBatchSize(batchSize))
	}
	if cmd.Flags().Changed("jobs") {
		res = append(res, config.OptJobsNumber(jobs))
	}
	return res
}

func runImport(
	cmd *cobra.Command,
	files []string,
	reimport bool,
	batchSize, jobs int,
	format string,
) error {
	f, err := parseFormat(format)
	if err != nil {
		return err
	}

	cfg.Update(importOptions(cmd, reimport, batchSize, jobs))
	// bars of concurrent imports would overwrite each other
	cfg.Update([]config.Option{
		config.OptImportProgress(len(files) == 1 && f == formatText),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	op, err := connect(ctx, true)
	if err != nil {
		return err
	}
	defer op.Close()

	imp := ioimport.New(cfg, ioextract.New(), iostore.New(op))

	results := make([]*model.ImportResult, len(files))
	errs := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(max(cfg.JobsNumber, 1))
	for i, path := range files {
		g.Go(func() error {
			results[i], errs[i] = imp.Import(ctx, path, !cfg.Import.Reimport)
			return nil
		})
	}
	_ = g.Wait()

	var done []*model.ImportResult
	var failed int
	for i, path := range files {
		if errs[i] != nil {
			failed++
			gn.PrintErrorMessage(errs[i])
			continue
		}
		done = append(done, results[i])
		if f == formatText {
			printImport(path, results[i])
		}
	}

	if f != formatText {
		out, err := encode(f, done)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}

	if failed > 0 {
		return &gn.Error{
			Code: errcode.ImportStageError,
			Msg:  "<em>%d</em> of <em>%d</em> files were not imported",
			Vars: []any{failed, len(files)},
			Err:  errors.New("some files were not imported"),
		}
	}
	return nil
}

func printImport(path string, res *model.ImportResult) {
	gn.Info("Imported <em>%s</em> as project <em>%s</em> in %s",
		path, res.ProjectID, gnfmt.TimeString(res.Duration.Seconds()))
	if res.ReplacedProject != nil {
		gn.Info("Replaced project <em>%s</em>", *res.ReplacedProject)
	}

	counts := []struct {
		name string
		n    int
	}{
		{"storeys", res.StoreyCount},
		{"types", res.TypeCount},
		{"materials", res.MaterialCount},
		{"elements", res.ElementCount},
		{"spaces", res.SpaceCount},
		{"properties", res.PropertyCount},
		{"quantities", res.QuantityCount},
		{"material layers", res.LayerCount},
		{"space boundaries", res.BoundaryCount},
		{"openings", res.OpeningCount},
	}
	for _, c := range counts {
		fmt.Printf("  %-17s %s\n", c.name+":", humanize.Comma(int64(c.n)))
	}

	for _, w := range res.Warnings {
		gn.Warn("%s", w)
	}
}
