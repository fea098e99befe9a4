package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"time"

	"github.com/contentgate/contentgate/internal/common"
)

const apiPrefix = "/paywallproxy/v1.0.0/json"

// HTTPClient talks to the paywall proxy HTTP API.
type HTTPClient struct {
	endpointURL string
	client      *http.Client
}

func NewPaywallClientService(endpointURL string) (*HTTPClient, error) {
	if endpointURL == "" {
		return nil, fmt.Errorf("empty endpoint url")
	}
	return &HTTPClient{
		endpointURL: endpointURL,
		client:      &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type deviceInfo struct {
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	OSVersion    string `json:"os_version"`
}

type authParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authRequest struct {
	Device     deviceInfo `json:"device"`
	AuthParams authParams `json:"authParams"`
}

type authResponse struct {
	SessionKey string   `json:"sessionKey"`
	Products   []string `json:"products"`
}

type validateResponse struct {
	Products []string `json:"products"`
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *HTTPClient) Authenticate(ctx context.Context, product string, username string, password []byte) (*AuthResult, error) {

	body, err := json.Marshal(authRequest{
		Device: deviceInfo{
			Manufacturer: "contentgate",
			Model:        "cli",
			OSVersion:    runtime.GOOS,
		},
		AuthParams: authParams{Username: username, Password: string(password)},
	})
	if err != nil {
		return nil, err
	}

	url := c.endpointURL + apiPrefix + "/auth/" + product
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", common.AuthScheme)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var ar authResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedBody, err)
	}
	if ar.SessionKey == "" {
		return nil, ErrUnexpectedBody
	}

	return &AuthResult{SessionKey: ar.SessionKey, Products: ar.Products}, nil
}

func (c *HTTPClient) Validate(ctx context.Context, product string, sessionKey string) ([]string, error) {

	url := c.endpointURL + apiPrefix + "/validate/" + product
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", common.SessionScheme+" "+common.SessionTokenPrefix+sessionKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var vr validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedBody, err)
	}

	return vr.Products, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpointURL+"/healthz", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// apiError converts a non-200 response into the matching sentinel error,
// so callers can use errors.Is regardless of the transport.
func apiError(resp *http.Response) error {
	var eb errorBody
	if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil {
		return fmt.Errorf("%w: status %d", ErrUnexpectedBody, resp.StatusCode)
	}

	switch eb.Error.Code {
	case "InvalidPaywallCredentials":
		return common.ErrUnknownCredentials
	case "AccountProblem":
		return common.ErrAccountDisabled
	case "InvalidProduct":
		return common.ErrProductNotFound
	case "SessionExpired":
		return common.ErrSessionExpired
	}
	return fmt.Errorf("server error %s: %s", eb.Error.Code, eb.Error.Message)
}
