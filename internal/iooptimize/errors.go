package iooptimize

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/ifcdb/pkg/errcode"
)

// NotConnectedError is returned when the operator has no pool.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected",
		Err:  errors.New("optimize without connection"),
	}
}

// PurgeError is returned when soft-deleted projects cannot be removed.
func PurgeError(err error) error {
	msg := `Cannot remove deleted projects

Check PostgreSQL logs for details.`

	return &gn.Error{
		Code: errcode.OptimizePurgeError,
		Msg:  msg,
		Err:  fmt.Errorf("purge deleted projects: %w", err),
	}
}

// VacuumError is returned when VACUUM ANALYZE fails.
func VacuumError(err error) error {
	return &gn.Error{
		Code: errcode.OptimizeVacuumError,
		Msg:  "Cannot run <em>VACUUM ANALYZE</em>",
		Err:  fmt.Errorf("vacuum analyze: %w", err),
	}
}
