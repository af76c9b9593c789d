package predictor

import (
	"fmt"
	"strings"
)

// ErrSchemaMismatch is returned when a feature row does not have the columns the model was trained on.
type ErrSchemaMismatch struct {
	error
}

func NewErrSchemaMismatch(model string, expected, got []string) *ErrSchemaMismatch {
	return &ErrSchemaMismatch{fmt.Errorf("model %s expects columns [%s], got [%s]",
		model, strings.Join(expected, ", "), strings.Join(got, ", "))}
}

// ErrInvalidArtifact is returned when a model artifact cannot be used.
type ErrInvalidArtifact struct {
	error
}

func NewErrInvalidArtifact(format string, args ...any) *ErrInvalidArtifact {
	return &ErrInvalidArtifact{fmt.Errorf("invalid model artifact: "+format, args...)}
}

// ErrRemoteStatus is returned when the model server answers with a non-2xx status.
type ErrRemoteStatus struct {
	error
	StatusCode int
}

func NewErrRemoteStatus(statusCode int, body string) *ErrRemoteStatus {
	return &ErrRemoteStatus{
		error:      fmt.Errorf("model server returned status %d: %s", statusCode, strings.TrimSpace(body)),
		StatusCode: statusCode,
	}
}
