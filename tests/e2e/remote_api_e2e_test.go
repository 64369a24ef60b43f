//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

type principal struct {
	ID  string
	Key string
}

func TestRemoteAPI_QuestLifecycle(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", ""), "/")
	if baseURL == "" {
		t.Skip("E2E_BASE_URL not set")
	}
	backend := principal{ID: envOr("E2E_BACKEND_ID", ""), Key: envOr("E2E_BACKEND_KEY", "")}
	assetID := envOr("E2E_ASSET_ID", "")
	owner := envOr("E2E_ASSET_OWNER", "")
	client := &http.Client{Timeout: 20 * time.Second}

	t.Run("healthz", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodGet, baseURL+"/healthz", principal{}, nil)
		if status != http.StatusOK {
			t.Fatalf("healthz status=%d body=%s", status, string(body))
		}
	})

	t.Run("mutations require principal headers", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/events", principal{}, map[string]any{"name": "x"})
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", status, string(body))
		}
	})

	status, regBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/principals/register", principal{}, nil)
	if status != http.StatusCreated {
		t.Fatalf("register status=%d body=%s", status, string(regBody))
	}
	var reg map[string]any
	if err := json.Unmarshal(regBody, &reg); err != nil {
		t.Fatalf("unmarshal register: %v body=%s", err, string(regBody))
	}
	scanner := principal{ID: asString(reg["principal_id"]), Key: asString(reg["principal_key"])}

	event := "e2e-" + time.Now().UTC().Format("20060102150405")
	quest := "check-in"

	t.Run("catalog", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/events", scanner, map[string]any{"name": event})
		if status != http.StatusCreated {
			t.Fatalf("create event status=%d body=%s", status, string(body))
		}
		status, body = mustJSON(t, client, http.MethodPost, baseURL+"/api/events/"+event+"/quests", scanner, map[string]any{"name": quest, "xp_reward": 250})
		if status != http.StatusCreated {
			t.Fatalf("create quest status=%d body=%s", status, string(body))
		}
		status, body = mustJSON(t, client, http.MethodGet, baseURL+"/api/events/"+event+"/quests/"+quest, principal{}, nil)
		if status != http.StatusOK {
			t.Fatalf("get quest status=%d body=%s", status, string(body))
		}
	})

	if backend.ID == "" || assetID == "" || owner == "" {
		t.Skip("E2E_BACKEND_ID, E2E_ASSET_ID and E2E_ASSET_OWNER are required for soul flows")
	}

	t.Run("initialize complete evolve", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/souls", backend, map[string]any{
			"asset_id": assetID,
			"owner":    owner,
			"event":    event,
		})
		if status != http.StatusCreated && status != http.StatusConflict {
			t.Fatalf("initialize status=%d body=%s", status, string(body))
		}

		status, body = mustJSON(t, client, http.MethodPost, baseURL+"/api/souls/"+assetID+"/grant", backend, map[string]any{"xp": 100})
		if status != http.StatusOK {
			t.Fatalf("grant status=%d body=%s", status, string(body))
		}

		status, body = mustJSON(t, client, http.MethodPost, baseURL+"/api/souls/"+assetID+"/evolve", scanner, map[string]any{"stage": 1})
		if status != http.StatusOK && status != http.StatusConflict {
			t.Fatalf("activate status=%d body=%s", status, string(body))
		}

		completeReq := map[string]any{"event": event, "quest": quest, "recipient": owner}
		status, body = mustJSON(t, client, http.MethodPost, baseURL+"/api/souls/"+assetID+"/complete", scanner, completeReq)
		if status != http.StatusOK {
			t.Fatalf("first complete status=%d body=%s", status, string(body))
		}
		status, body = mustJSON(t, client, http.MethodPost, baseURL+"/api/souls/"+assetID+"/complete", scanner, completeReq)
		if status != http.StatusConflict {
			t.Fatalf("duplicate complete status=%d body=%s", status, string(body))
		}
		var dup map[string]any
		if err := json.Unmarshal(body, &dup); err != nil {
			t.Fatalf("unmarshal duplicate: %v body=%s", err, string(body))
		}
		if got := asString(asMap(dup["error"])["code"]); got != "duplicate_completion" {
			t.Fatalf("expected duplicate_completion, got %q", got)
		}
	})

	t.Run("status history kpi", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodGet, baseURL+"/api/souls/"+assetID, principal{}, nil)
		if status != http.StatusOK {
			t.Fatalf("status status=%d body=%s", status, string(body))
		}
		status, body = mustJSON(t, client, http.MethodGet, baseURL+"/api/souls/"+assetID+"/history?limit=10", principal{}, nil)
		if status != http.StatusOK {
			t.Fatalf("history status=%d body=%s", status, string(body))
		}
		var hist map[string]any
		if err := json.Unmarshal(body, &hist); err != nil {
			t.Fatalf("unmarshal history: %v body=%s", err, string(body))
		}
		if len(asSlice(hist["entries"])) == 0 {
			t.Fatalf("expected journal entries")
		}
		status, body = mustJSON(t, client, http.MethodGet, baseURL+"/ops/kpi", principal{}, nil)
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(body))
		}
	})
}

func mustJSON(t *testing.T, client *http.Client, method, url string, p principal, body map[string]any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, p, body)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url string, p principal, body map[string]any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		payloadBytes = b
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if p.ID != "" {
			req.Header.Set("X-Principal-ID", p.ID)
			req.Header.Set("X-Principal-Key", p.Key)
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
