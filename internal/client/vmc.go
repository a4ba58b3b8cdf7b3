package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kubev2v/sddcinfo/pkg/log"
	"github.com/kubev2v/sddcinfo/pkg/requestid"
	"github.com/kubev2v/sddcinfo/pkg/vmc"
	"go.uber.org/zap"
)

const (
	authorizePath = "/csp/gateway/am/api/auth/api-tokens/authorize"

	publicIPsPath        = "/cloud-service/api/v1/public-ips/"
	segmentsPath         = "/policy/api/v1/infra/tier-1s/cgw/segments"
	learnedRoutesPath    = "/cloud-service/api/v1/infra/external/routes/learned"
	advertisedRoutesPath = "/cloud-service/api/v1/infra/external/routes/advertised"
	linkedVPCsPath       = "/cloud-service/api/v1/linked-vpcs"

	authTokenHeader = "csp-auth-token"
)

// VMCClient reads org and SDDC data for one org. It is not safe for concurrent use.
type VMCClient struct {
	orgID      string
	cspURL     string
	vmcURL     string
	httpClient *http.Client
	token      string
	logger     *zap.SugaredLogger
}

// AccessToken is the short lived token returned by the identity service.
type AccessToken struct {
	Value     string
	ExpiresIn time.Duration
}

type authorizeResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func NewVMCClient(orgID string, service Service, timeout time.Duration) *VMCClient {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &VMCClient{
		orgID:  orgID,
		cspURL: strings.TrimSuffix(service.CSP, "/"),
		vmcURL: strings.TrimSuffix(service.VMC, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: log.Transport(zap.L(), "http", http.DefaultTransport),
		},
		logger: zap.S().Named("vmc_client"),
	}
}

// Authenticate exchanges the refresh token for an access token used by every
// following call.
func (c *VMCClient) Authenticate(ctx context.Context, refreshToken string) (*AccessToken, error) {
	form := url.Values{"refresh_token": []string{refreshToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cspURL+authorizePath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	requestid.Propagate(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call identity service: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewErrAuth(fmt.Sprintf("identity service returned status %d", resp.StatusCode))
	}

	var body authorizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, NewErrAuth(fmt.Sprintf("failed to decode response: %s", err))
	}
	if body.AccessToken == "" {
		return nil, NewErrAuth("no access token in response")
	}

	c.token = body.AccessToken
	inspectAccessToken(c.logger, body.AccessToken, c.orgID)

	return &AccessToken{Value: body.AccessToken, ExpiresIn: time.Duration(body.ExpiresIn) * time.Second}, nil
}

// Org returns the org information. The org type is required.
func (c *VMCClient) Org(ctx context.Context) (*vmc.Org, error) {
	var org vmc.Org
	if err := c.getRequired(ctx, c.orgURL(), "org", &org); err != nil {
		return nil, err
	}
	if org.OrgType == "" {
		return nil, NewErrMalformedResponse("org", "org_type is missing")
	}
	return &org, nil
}

// SDDCs returns every SDDC of the org, or only sddcID when it is not empty.
func (c *VMCClient) SDDCs(ctx context.Context, sddcID string) ([]vmc.SDDC, error) {
	if sddcID != "" {
		var sddc vmc.SDDC
		if err := c.getRequired(ctx, fmt.Sprintf("%s/sddcs/%s", c.orgURL(), url.PathEscape(sddcID)), "sddc", &sddc); err != nil {
			return nil, err
		}
		if sddc.ID == "" && sddc.ResourceConfig == nil {
			return nil, NewErrMalformedResponse("sddc", "neither id nor resource_config in response")
		}
		return []vmc.SDDC{sddc}, nil
	}

	var sddcs []vmc.SDDC
	if err := c.getRequired(ctx, c.orgURL()+"/sddcs", "sddc list", &sddcs); err != nil {
		return nil, err
	}
	if sddcs == nil {
		return nil, NewErrMalformedResponse("sddc list", "no sddc list in response")
	}
	return sddcs, nil
}

func (c *VMCClient) PublicIPs(ctx context.Context, sddc vmc.SDDC) (*vmc.PublicIPList, error) {
	return getOptional[vmc.PublicIPList](ctx, c, sddc, publicIPsPath)
}

func (c *VMCClient) Segments(ctx context.Context, sddc vmc.SDDC) (*vmc.SegmentList, error) {
	return getOptional[vmc.SegmentList](ctx, c, sddc, segmentsPath)
}

func (c *VMCClient) AdvertisedRoutes(ctx context.Context, sddc vmc.SDDC) (*vmc.RouteList, error) {
	return getOptional[vmc.RouteList](ctx, c, sddc, advertisedRoutesPath)
}

func (c *VMCClient) LearnedRoutes(ctx context.Context, sddc vmc.SDDC) (*vmc.RouteList, error) {
	return getOptional[vmc.RouteList](ctx, c, sddc, learnedRoutesPath)
}

func (c *VMCClient) LinkedVPCs(ctx context.Context, sddc vmc.SDDC) (*vmc.LinkedVPCList, error) {
	return getOptional[vmc.LinkedVPCList](ctx, c, sddc, linkedVPCsPath)
}

func getOptional[T any](ctx context.Context, c *VMCClient, sddc vmc.SDDC, path string) (*T, error) {
	out := new(T)
	ok, err := c.fetchOptional(ctx, sddc, path, out)
	if err != nil || !ok {
		return nil, err
	}
	return out, nil
}

func (c *VMCClient) orgURL() string {
	return fmt.Sprintf("%s/vmc/api/orgs/%s", c.vmcURL, url.PathEscape(c.orgID))
}

// getRequired reads a resource the report cannot do without.
func (c *VMCClient) getRequired(ctx context.Context, u string, resource string, out any) error {
	resp, err := c.get(ctx, u)
	if err != nil {
		return fmt.Errorf("failed to call vmc api: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return NewErrMalformedResponse(resource, fmt.Sprintf("vmc api returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewErrMalformedResponse(resource, err.Error())
	}
	return nil
}

// fetchOptional reads a sub-resource from the SDDC NSX endpoint. Any failure
// means the resource is not available: it is logged and reported as not found.
func (c *VMCClient) fetchOptional(ctx context.Context, sddc vmc.SDDC, path string, out any) (bool, error) {
	endpoint := sddc.NSXEndpoint()
	if endpoint == "" {
		c.logger.Debugw("sddc has no nsx endpoint", "sddc", sddc.ID, "path", path)
		return false, nil
	}

	resp, err := c.get(ctx, strings.TrimSuffix(endpoint, "/")+path)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		c.logger.Warnw("sub-resource unavailable", "sddc", sddc.ID, "path", path, "error", err)
		return false, nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.logger.Debugw("sub-resource permission denied", "sddc", sddc.ID, "path", path, "status", resp.StatusCode)
		return false, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Debugw("sub-resource unavailable", "sddc", sddc.ID, "path", path, "status", resp.StatusCode)
		return false, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Warnw("failed to decode sub-resource", "sddc", sddc.ID, "path", path, "error", err)
		return false, nil
	}
	return true, nil
}

func (c *VMCClient) get(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(authTokenHeader, c.token)
	requestid.Propagate(req)

	return c.httpClient.Do(req)
}
