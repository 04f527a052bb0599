package utils

import (
	"context"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// StartSubsegment opens an X-Ray subsegment when ctx carries a segment and
// returns a func that closes it with the outcome. Without a parent segment
// it is a no-op, so callers outside a traced request never panic.
func StartSubsegment(ctx context.Context, name string) (context.Context, func(error)) {
	if xray.GetSegment(ctx) == nil {
		return ctx, func(error) {}
	}
	ctx, seg := xray.BeginSubsegment(ctx, name)
	if seg == nil {
		return ctx, func(error) {}
	}
	return ctx, func(err error) { seg.Close(err) }
}
