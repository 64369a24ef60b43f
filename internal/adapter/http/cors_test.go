package httpadapter

import (
	"context"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func TestApplyCORSHeaders_DefaultsToAnyOrigin(t *testing.T) {
	ctx := &app.RequestContext{}
	applyCORSHeaders(ctx, "")

	if got, want := string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")), "*"; got != want {
		t.Fatalf("allow-origin mismatch: got=%q want=%q", got, want)
	}
	if got := string(ctx.Response.Header.Peek("Vary")); got != "" {
		t.Fatalf("unexpected vary header %q", got)
	}
	if got, want := string(ctx.Response.Header.Peek("Access-Control-Allow-Headers")), corsAllowHeaders; got != want {
		t.Fatalf("allow-headers mismatch: got=%q want=%q", got, want)
	}
}

func TestApplyCORSHeaders_PinnedOrigin(t *testing.T) {
	ctx := &app.RequestContext{}
	applyCORSHeaders(ctx, "https://scanner.example")

	if got, want := string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")), "https://scanner.example"; got != want {
		t.Fatalf("allow-origin mismatch: got=%q want=%q", got, want)
	}
	if got, want := string(ctx.Response.Header.Peek("Vary")), "Origin"; got != want {
		t.Fatalf("vary mismatch: got=%q want=%q", got, want)
	}
}

func TestCORSMiddleware_PreflightShortCircuits(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.Header.SetMethod(consts.MethodOptions)

	corsMiddleware("")(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusNoContent; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if !ctx.IsAborted() {
		t.Fatalf("expected preflight to abort the chain")
	}
}
