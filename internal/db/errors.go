package db

import (
	"errors"
	"fmt"
)

// ErrStorage matches every error produced while opening or preparing the database.
var ErrStorage = errors.New("storage error")

// StorageOpenError means the database file could not be opened or reached.
type StorageOpenError struct {
	Path string
	Err  error
}

func (e *StorageOpenError) Error() string {
	return fmt.Sprintf("open sqlite %q: %v", e.Path, e.Err)
}

func (e *StorageOpenError) Unwrap() error { return e.Err }

func (e *StorageOpenError) Is(target error) bool { return target == ErrStorage }

// SchemaExecutionError means the DDL batch failed.
type SchemaExecutionError struct {
	Err error
}

func (e *SchemaExecutionError) Error() string {
	return fmt.Sprintf("apply schema: %v", e.Err)
}

func (e *SchemaExecutionError) Unwrap() error { return e.Err }

func (e *SchemaExecutionError) Is(target error) bool { return target == ErrStorage }
