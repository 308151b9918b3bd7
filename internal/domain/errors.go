package domain

import "github.com/cockroachdb/errors"

var (
	ErrUnknownField    = errors.New("unknown draft field")
	ErrUnknownCode     = errors.New("unknown code")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time of day")
	ErrAttachmentType  = errors.New("attachment type not accepted")
	ErrAttachmentEmpty = errors.New("attachment is empty")
	ErrTimeWithoutDate = errors.New("time selected without an available date")
	// ErrIncompleteStep marks a step whose required fields are missing or invalid.
	ErrIncompleteStep = errors.New("step incomplete")
)
