// Package httporacle reads raw asset account data from a registry gateway.
package httporacle

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"soulledger/internal/app/ports"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// Oracle fetches GET {base}/assets/{asset}/account and returns the body
// untouched. Decoding and validation happen in the ownership verifier.
type Oracle struct {
	baseURL string
	client  *client.Client
	timeout time.Duration
}

func New(baseURL string, timeout time.Duration) (*Oracle, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("oracle url is required")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	c, err := client.NewClient(
		client.WithDialTimeout(timeout),
		client.WithClientReadTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("new oracle client: %w", err)
	}
	return &Oracle{baseURL: baseURL, client: c, timeout: timeout}, nil
}

func (o *Oracle) AccountData(ctx context.Context, assetID string) ([]byte, error) {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseRequest(req)
	defer protocol.ReleaseResponse(resp)

	req.SetRequestURI(o.baseURL + "/assets/" + url.PathEscape(assetID) + "/account")
	req.SetMethod(consts.MethodGet)

	if err := o.client.DoTimeout(ctx, req, resp, o.timeout); err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	switch code := resp.StatusCode(); {
	case code == consts.StatusNotFound:
		return nil, ports.ErrNotFound
	case code != consts.StatusOK:
		return nil, fmt.Errorf("get account: status %d", code)
	}
	body := resp.Body()
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}
