package service

import (
	"fmt"
)

const MaxCountriesLimit = 100

type ErrInvalidLimit struct {
	error
}

func NewErrInvalidLimit(limit int) *ErrInvalidLimit {
	return &ErrInvalidLimit{fmt.Errorf("invalid limit %d: must not exceed %d", limit, MaxCountriesLimit)}
}

type ErrDatasetEmpty struct {
	error
}

func NewErrDatasetEmpty(source string) *ErrDatasetEmpty {
	return &ErrDatasetEmpty{fmt.Errorf("dataset %s has no records", source)}
}

type ErrFileCorrupted struct {
	error
}

func NewErrFileCorrupted(message string) *ErrFileCorrupted {
	return &ErrFileCorrupted{fmt.Errorf("bad request: %s", message)}
}

func NewErrDatasetFileCorrupted(message string) *ErrFileCorrupted {
	return NewErrFileCorrupted(fmt.Sprintf("the provided dataset file is corrupted: %s", message))
}
