package model

import "github.com/cockroachdb/errors"

// Loader errors. Match with errors.Is.
var (
	ErrParse           = errors.New("model parse failed")
	ErrIndexOutOfRange = errors.New("model index out of range")
	ErrUnsupportedSpec = errors.New("unsupported model spec")
)

func indexError(what string, face, corner int, index int32, count int) error {
	return errors.Mark(
		errors.Newf("face %d corner %d: %s index %d out of range [0,%d)", face, corner, what, index, count),
		ErrIndexOutOfRange,
	)
}
