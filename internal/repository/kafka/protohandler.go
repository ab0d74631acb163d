package kafka

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
)

// ErrDecode marks a message whose value is not a valid encoding of the
// expected type. Such messages are committed and skipped.
var ErrDecode = errors.New("decode message")

func ProtoHandler[M proto.Message](ctor func() M, handle func(context.Context, Message, M) error) Handler {
	return func(ctx context.Context, msg Message) error {
		m := ctor()
		if err := proto.Unmarshal(msg.Value, m); err != nil {
			return fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return handle(ctx, msg, m)
	}
}
