package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
)

// mapNetError turns a net/io error from stage of op into one of the package
// sentinels. shortReadIsProtocol marks reads of a fixed-size reply whose
// truncation means the peer broke the protocol rather than the link.
func mapNetError(ctx context.Context, op, stage string, err error, shortReadIsProtocol bool) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrConnection, op, stage, ctxErr)
	}

	if shortReadIsProtocol && (errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)) {
		return fmt.Errorf("%w: %s %s: short reply: %v", ErrProtocol, op, stage, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() || errors.Is(err, os.ErrDeadlineExceeded) {
		return fmt.Errorf("%w: %s %s: timeout: %v", ErrConnection, op, stage, err)
	}

	return fmt.Errorf("%w: %s %s: %v", ErrConnection, op, stage, err)
}
