package dataset

import "fmt"

type ErrMissingColumn struct {
	error
	Column string
}

func NewErrMissingColumn(column string) *ErrMissingColumn {
	return &ErrMissingColumn{error: fmt.Errorf("missing required column %q", column), Column: column}
}

type ErrInvalidValue struct {
	error
	Line   int
	Column string
}

func NewErrInvalidValue(line int, column, value string) *ErrInvalidValue {
	return &ErrInvalidValue{
		error:  fmt.Errorf("line %d: invalid %s value %q", line, column, value),
		Line:   line,
		Column: column,
	}
}

type ErrUnsupportedFormat struct {
	error
}

func NewErrUnsupportedFormat(ext string) *ErrUnsupportedFormat {
	return &ErrUnsupportedFormat{fmt.Errorf("unsupported dataset format %q: expected .csv or .xlsx", ext)}
}
