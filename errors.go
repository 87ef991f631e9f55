package reed

import (
	"errors"
	"fmt"
)

// ErrProtocol is wrapped by every fatal violation of the touch input
// protocol. The offending touch session is aborted before it is returned.
var ErrProtocol = errors.New("reed: input protocol violation")

var (
	// ErrPointCount reports a frame whose reported point count differs from
	// its declared count.
	ErrPointCount = fmt.Errorf("%w: wrong number of touch points", ErrProtocol)

	// ErrLostRelease reports a raw id pressed again while still live, or a
	// live point missing from a frame.
	ErrLostRelease = fmt.Errorf("%w: lost touch release", ErrProtocol)

	// ErrUnknownTouchID reports a reference to a touch point that is not live.
	ErrUnknownTouchID = fmt.Errorf("%w: wrong touch point id", ErrProtocol)

	// ErrDuplicatePoint reports a raw id reported twice in one frame.
	ErrDuplicatePoint = fmt.Errorf("%w: touch point reported twice", ErrProtocol)
)

// ErrIllegalState is wrapped by usage errors: calls made by listener code
// at a time or with arguments the current state does not allow.
var ErrIllegalState = errors.New("reed: illegal state")

var (
	// ErrNoTransferModes is returned when a drag is started without any
	// supported transfer mode.
	ErrNoTransferModes = fmt.Errorf("%w: no transfer modes", ErrIllegalState)

	// ErrNotDetecting is returned when a drag-and-drop gesture is started
	// outside of drag detected processing.
	ErrNotDetecting = fmt.Errorf("%w: drag and drop may only start from a drag detected handler", ErrIllegalState)

	// ErrUnsupportedTransfer is returned when a drop handler accepts a
	// transfer mode the gesture source does not support.
	ErrUnsupportedTransfer = fmt.Errorf("%w: accepting unsupported transfer modes inside drag dropped handler", ErrIllegalState)

	// ErrFrameClosed is returned for operations on a touch frame handle that
	// was already ended, aborted, or superseded.
	ErrFrameClosed = fmt.Errorf("%w: touch frame closed", ErrIllegalState)
)
