package ioschema

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/ifcdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("failed")
	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
	}{
		{"gorm", GORMConnectionError(cause), errcode.SchemaGORMConnectionError},
		{"create", CreateSchemaError(cause), errcode.SchemaCreateError},
		{"migrate", MigrateSchemaError(cause), errcode.SchemaMigrateError},
		{"collation", CollationError("spaces", "global_id", cause),
			errcode.SchemaCollationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gnErr *gn.Error
			require.ErrorAs(t, tt.err, &gnErr)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			assert.ErrorIs(t, gnErr.Err, cause)
		})
	}

	var gnErr *gn.Error
	require.ErrorAs(t, NotConnectedError(), &gnErr)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}
