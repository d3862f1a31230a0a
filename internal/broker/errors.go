package broker

import (
	stderrors "errors"

	"mqbroker/internal/filter"
	"mqbroker/internal/message"
	"mqbroker/internal/queue"
	"mqbroker/pkg/errors"
)

// ToAppError maps core failures onto the coded errors written to clients.
// The original error is kept as the cause for logging.
func ToAppError(err error) error {
	if err == nil {
		return nil
	}

	var verr *filter.ValidationError
	switch {
	case stderrors.Is(err, message.ErrParse), stderrors.Is(err, filter.ErrParse):
		return errors.ErrBadRequest.WithCause(err)
	case stderrors.Is(err, message.ErrSchema):
		return errors.ErrSchema.WithCause(err)
	case stderrors.Is(err, queue.ErrDuplicate):
		return errors.ErrDuplicate.WithCause(err)
	case stderrors.Is(err, queue.ErrEmpty):
		return errors.ErrQueueEmpty.WithCause(err)
	case stderrors.As(err, &verr):
		return errors.ErrFilterValidation.WithMessage(verr.Reason).WithCause(err)
	case stderrors.Is(err, ErrNoMatch):
		return errors.ErrNoMatch.WithCause(err)
	default:
		return errors.ErrInternal.WithCause(err)
	}
}
