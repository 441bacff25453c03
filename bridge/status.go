package bridge

import (
	goerrors "errors"

	"github.com/wombatlabs/worldbridge/errors"
)

// Status is the flat int32 result code every boundary operation
// reports to foreign callers: 0 is success, anything else a specific
// failure. Results travel through out-parameters, never through the
// status itself.
//
// The numbering is append-only. New codes get new numbers; existing
// codes are never renumbered, renamed, or removed.
type Status = int32

const (
	StatusOK            Status = 0
	StatusNullPointer   Status = -1
	StatusQueryFailed   Status = -2
	StatusNotFound      Status = -3
	StatusNoComponent   Status = -4
	StatusInvalidHandle Status = -5
	StatusSendFailed    Status = -7
	StatusTypeMismatch  Status = -8
	StatusBufferSmall   Status = -9
	StatusInvalidKey    Status = -10
	StatusDoubleFree    Status = -11
	StatusInvalidUTF8   Status = -108
	StatusUnknown       Status = -1274
)

// StatusOf lowers an internal error to its boundary status code. This
// is the only place the structured error sum type meets the flat
// status convention; everything inside the bridge works with errors.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	var e *errors.Error
	if !goerrors.As(err, &e) {
		return StatusUnknown
	}
	switch e.Kind {
	case errors.KindNilPointer:
		return StatusNullPointer
	case errors.KindNotFound:
		return StatusNotFound
	case errors.KindNoComponent:
		return StatusNoComponent
	case errors.KindInvalidHandle, errors.KindClosed:
		return StatusInvalidHandle
	case errors.KindSendFailed:
		return StatusSendFailed
	case errors.KindTypeMismatch:
		return StatusTypeMismatch
	case errors.KindBufferTooSmall:
		return StatusBufferSmall
	case errors.KindInvalidKey:
		return StatusInvalidKey
	case errors.KindDoubleRelease:
		return StatusDoubleFree
	case errors.KindInvalidUTF8:
		return StatusInvalidUTF8
	case errors.KindOutOfBounds, errors.KindInvalidInput, errors.KindRegistration:
		return StatusQueryFailed
	case errors.KindAllocation:
		return StatusUnknown
	}
	return StatusUnknown
}
