package wrap

import (
	"context"
	"errors"
	"testing"
)

func TestErrorCtxRestoresContext(t *testing.T) {
	base := errors.New("boom")

	inner := WithAction(WithStatementID(context.Background(), "stmt-1"), "fetch")
	err := Error(inner, base)

	outer := WithAction(WithRequestID(context.Background(), "req-1"), "handler")
	got := FromContext(ErrorCtx(outer, err))

	if got.Action != "fetch" || got.StatementID != "stmt-1" || got.RequestID != "req-1" {
		t.Fatalf("expected context of the failing layer, got %+v", got)
	}
	if !errors.Is(err, base) {
		t.Fatalf("wrapped error must unwrap to the original")
	}
	if err.Error() != "boom" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestErrorOutermostWins(t *testing.T) {
	base := errors.New("boom")
	err := Error(WithAction(context.Background(), "inner"), base)
	err = Error(WithAction(context.Background(), "outer"), err)

	if got := FromContext(ErrorCtx(context.Background(), err)); got.Action != "outer" {
		t.Fatalf("expected outer action, got %q", got.Action)
	}
}

func TestErrorNil(t *testing.T) {
	if Error(context.Background(), nil) != nil {
		t.Fatalf("nil error must stay nil")
	}
}

func TestWithLogCtxMerges(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithLogCtx(ctx, LogCtx{Action: "render"})

	got := FromContext(ctx)
	if got.RequestID != "req-1" || got.Action != "render" {
		t.Fatalf("unexpected log ctx %+v", got)
	}
}
