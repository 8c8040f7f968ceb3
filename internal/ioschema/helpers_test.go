package ioschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollationSQL(t *testing.T) {
	tests := []struct {
		table, column string
		varchar       int
		want          string
	}{
		{"storeys", "global_id", 64,
			`ALTER TABLE "storeys" ALTER COLUMN "global_id" TYPE VARCHAR(64) COLLATE "C"`},
		{"building_elements", "global_id", 64,
			`ALTER TABLE "building_elements" ALTER COLUMN "global_id" TYPE VARCHAR(64) COLLATE "C"`},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			assert.Equal(t, tt.want, collationSQL(tt.table, tt.column, tt.varchar))
		})
	}
}
