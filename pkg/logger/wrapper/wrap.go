package wrap

import (
	"context"
)

// Error attaches the current LogCtx to err. The outermost attachment wins
// when the error is later read back with ErrorCtx.
func Error(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	return &errorWithLogCtx{
		err:    err,
		logCtx: FromContext(ctx),
	}
}
