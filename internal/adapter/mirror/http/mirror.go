// Package httpmirror pushes attribute updates to a metadata service.
package httpmirror

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type updateRequest struct {
	Attributes map[string]string `json:"attributes"`
}

// Mirror posts {"attributes": {...}} to {base}/assets/{asset}/attributes.
// Any non-2xx answer is an error.
type Mirror struct {
	baseURL string
	client  *client.Client
	timeout time.Duration
}

func New(baseURL string, timeout time.Duration) (*Mirror, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("mirror url is required")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	c, err := client.NewClient(client.WithDialTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("new mirror client: %w", err)
	}
	return &Mirror{baseURL: baseURL, client: c, timeout: timeout}, nil
}

func (m *Mirror) UpdateAttributes(ctx context.Context, assetID string, attributes map[string]string) error {
	body, err := json.Marshal(updateRequest{Attributes: attributes})
	if err != nil {
		return fmt.Errorf("encode attributes: %w", err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseRequest(req)
	defer protocol.ReleaseResponse(resp)

	req.SetRequestURI(m.baseURL + "/assets/" + url.PathEscape(assetID) + "/attributes")
	req.SetMethod(consts.MethodPost)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBody(body)

	if err := m.client.DoTimeout(ctx, req, resp, m.timeout); err != nil {
		return fmt.Errorf("post attributes: %w", err)
	}
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return fmt.Errorf("post attributes: status %d: %s", code, truncate(resp.Body(), 256))
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
