package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/ifcdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		name  string
		err   error
		code  gn.ErrorCode
		vars  int
		cause bool
	}{
		{"connection", ConnectionError("localhost", 5432, "ifcdb", "postgres", cause),
			errcode.DBConnectionError, 5, true},
		{"table check", TableCheckError(cause), errcode.DBTableCheckError, 0, true},
		{"empty", EmptyDatabaseError("localhost", "ifcdb"),
			errcode.DBEmptyDatabaseError, 2, false},
		{"not connected", NotConnectedError(), errcode.DBNotConnectedError, 0, false},
		{"table exists", TableExistsCheckError("storeys", cause),
			errcode.DBTableExistsCheckError, 1, true},
		{"query tables", QueryTablesError(cause), errcode.DBQueryTablesError, 0, true},
		{"scan table", ScanTableError(cause), errcode.DBScanTableError, 0, true},
		{"drop table", DropTableError("spaces", cause), errcode.DBDropTableError, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gnErr *gn.Error
			require.ErrorAs(t, tt.err, &gnErr)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			assert.Len(t, gnErr.Vars, tt.vars)
			if tt.cause {
				assert.ErrorIs(t, gnErr.Err, cause)
			}
		})
	}
}
