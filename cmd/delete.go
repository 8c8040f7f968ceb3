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

	"github.com/gnames/gn"
	"github.com/gnames/ifcdb/internal/ioproject"
	"github.com/gnames/ifcdb/internal/iostore"
	"github.com/gnames/ifcdb/pkg/errcode"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// getDeleteCmd returns the delete command.
func getDeleteCmd() *cobra.Command {
	var hard bool

	deleteCmd := &cobra.Command{
		Use:     "delete <project-id>",
		Aliases: []string{"rm"},
		Short:   "Delete an imported project",
		Long: `Delete an imported project.

By default the project is soft-deleted: it disappears from the list of
active projects and its file can be imported again, but its rows stay.
With --hard the project and all its rows are removed.

Soft-deleted projects are removed for good by 'ifcdb optimize'.

Examples:
  ifcdb delete 0b6f3a8e-3c1f-4f57-9a55-4f7d1ad0e4a2
  ifcdb delete --hard 0b6f3a8e-3c1f-4f57-9a55-4f7d1ad0e4a2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDelete(args[0], hard)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	deleteCmd.Flags().BoolVar(&hard, "hard", false,
		"remove the project and all its rows")

	return deleteCmd
}

func parseProjectID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, &gn.Error{
			Code: errcode.InvalidProjectIDError,
			Msg:  "<em>%s</em> is not a valid project ID",
			Vars: []any{s},
			Err:  fmt.Errorf("parse project id %q: %w", s, err),
		}
	}
	return id, nil
}

func runDelete(arg string, hard bool) error {
	id, err := parseProjectID(arg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	op, err := connect(ctx, true)
	if err != nil {
		return err
	}
	defer op.Close()

	if err = ioproject.New(iostore.New(op)).Delete(ctx, id, hard); err != nil {
		return err
	}

	if hard {
		gn.Info("Project <em>%s</em> and all its rows are removed", id)
	} else {
		gn.Info("Project <em>%s</em> is marked as deleted", id)
	}
	return nil
}
