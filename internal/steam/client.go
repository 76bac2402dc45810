package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"cs2showroom/internal/config"
	"cs2showroom/internal/domain"
	"cs2showroom/internal/inventory"
)

// FetchError reports an upstream failure after retries. Its text is shown
// to the operator verbatim, next to a link for reissuing the access token.
type FetchError struct {
	Reason string
}

func (e *FetchError) Error() string { return "steam api: " + e.Reason }

// The endpoint rejects requests without a browser-looking user agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/114.0.5735.199 Safari/537.36"

// Client pulls inventories from the Steam Web API with retry/backoff.
type Client struct {
	http *resty.Client
	cfg  config.SteamConfig
}

// NewClient builds a Steam API client using the provided configuration.
func NewClient(cfg config.SteamConfig) *Client {
	rc := resty.New().
		SetBaseURL(cfg.APIURL).
		SetHeader("User-Agent", userAgent).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(4 * time.Second).
		SetRetryMaxWaitTime(4 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// A 200 with no assets is as useless as a failure and is
			// usually transient; retry it too.
			return err != nil || r.StatusCode() != 200 || !hasAssets(r.Body())
		})
	return &Client{http: rc, cfg: cfg}
}

func hasAssets(body []byte) bool {
	var env struct {
		Response struct {
			Assets []json.RawMessage `json:"assets"`
		} `json:"response"`
	}
	if json.Unmarshal(body, &env) != nil {
		return false
	}
	return len(env.Response.Assets) > 0
}

type apiEnvelope struct {
	Response json.RawMessage `json:"response"`
}

// FetchInventory pulls the full inventory with descriptions and returns the
// normalized payload. Empty or malformed responses after retries surface as
// a FetchError.
func (c *Client) FetchInventory(ctx context.Context) (*domain.RawPayload, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"access_token":     c.cfg.AccessToken,
			"steamid":          c.cfg.SteamID,
			"appid":            c.cfg.AppID,
			"contextid":        c.cfg.ContextID,
			"get_descriptions": "true",
			"language":         "english",
			"count":            "1000",
		}).
		SetResult(&apiEnvelope{}).
		Get("")
	if err != nil {
		return nil, &FetchError{Reason: err.Error()}
	}
	if resp.StatusCode() != 200 {
		return nil, &FetchError{Reason: fmt.Sprintf("returned status %d", resp.StatusCode())}
	}
	env, _ := resp.Result().(*apiEnvelope)
	if env == nil || len(env.Response) == 0 {
		return nil, &FetchError{Reason: "empty response"}
	}

	payload, perr := inventory.ParsePayloads(string(env.Response))
	if perr != nil {
		return nil, &FetchError{Reason: perr.Error()}
	}
	if len(payload.Assets) == 0 {
		return nil, &FetchError{Reason: "response contained no assets"}
	}
	return payload, nil
}
