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
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/ifcdb/internal/ioproject"
	"github.com/gnames/ifcdb/internal/iostore"
	"github.com/gnames/ifcdb/pkg/model"
	"github.com/spf13/cobra"
)

// getListCmd returns the list command.
func getListCmd() *cobra.Command {
	var (
		all    bool
		format string
	)

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List imported projects",
		Long: `List imported projects, newest first.

Soft-deleted projects are shown with --all.

Examples:
  ifcdb list
  ifcdb list -a --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runList(all, format)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	listCmd.Flags().BoolVarP(&all, "all", "a", false,
		"include soft-deleted projects")
	listCmd.Flags().StringVarP(&format, "format", "f", "text",
		"output format: text, json or yaml")

	return listCmd
}

func runList(all bool, format string) error {
	f, err := parseFormat(format)
	if err != nil {
		return err
	}

	ctx := context.Background()
	op, err := connect(ctx, true)
	if err != nil {
		return err
	}
	defer op.Close()

	projects, err := ioproject.New(iostore.New(op)).List(ctx, all)
	if err != nil {
		return err
	}

	if f != formatText {
		out, err := encode(f, projects)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if len(projects) == 0 {
		gn.Info("No projects found")
		return nil
	}
	printProjects(projects)
	return nil
}

func printProjects(projects []model.ProjectInfo) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSCHEMA\tELEMENTS\tSPACES\tIMPORTED\tSTATUS")
	for _, p := range projects {
		status := "active"
		if p.DeletedAt != nil {
			status = "deleted " + humanize.Time(*p.DeletedAt)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.SchemaVersion,
			humanize.Comma(int64(p.ElementCount)),
			humanize.Comma(int64(p.SpaceCount)),
			humanize.Time(p.ImportedAt),
			status,
		)
	}
	w.Flush()
}
