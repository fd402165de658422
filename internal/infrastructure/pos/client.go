package pos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/frituurapp/backend/internal/domain/possync"
)

const (
	headerLicenseName  = "X-License-Name"
	headerLicenseToken = "X-License-Token"

	// maxResponseSize caps how much of a POS response body we read
	maxResponseSize = 10 << 20
)

// Client implements possync.Client against the POS HTTP API
type Client struct {
	baseURL      string
	licenseName  string
	licenseToken string
	httpClient   *http.Client
}

var _ possync.Client = (*Client)(nil)

// NewClient creates a POS API client for the given connection settings
func NewClient(conn *possync.Connection) *Client {
	return &Client{
		baseURL:      strings.TrimRight(conn.BaseURL, "/"),
		licenseName:  conn.LicenseName,
		licenseToken: conn.LicenseToken,
		httpClient: &http.Client{
			Timeout: conn.Timeout(),
		},
	}
}

// NewClientWithHTTPClient creates a client with a caller-supplied http.Client
func NewClientWithHTTPClient(conn *possync.Connection, httpClient *http.Client) *Client {
	c := NewClient(conn)
	c.httpClient = httpClient
	return c
}

// kindPath maps an entity kind onto its API collection path
func kindPath(kind possync.EntityKind) string {
	switch kind {
	case possync.KindCategory:
		return "categories"
	case possync.KindProduct:
		return "products"
	case possync.KindSubproduct:
		return "subproducts"
	default:
		return string(kind)
	}
}

// ListEntities fetches the POS's full entity set for a kind
func (c *Client) ListEntities(ctx context.Context, kind possync.EntityKind) ([]possync.RemoteEntity, error) {
	var resp listResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/"+kindPath(kind), nil, &resp); err != nil {
		return nil, err
	}
	if err := checkAPIError(resp.Error); err != nil {
		return nil, err
	}

	entities := make([]possync.RemoteEntity, 0, len(resp.Items))
	for i := range resp.Items {
		entities = append(entities, resp.Items[i].toDomain())
	}
	return entities, nil
}

// CreateEntity inserts an entity and returns the POS-assigned id
func (c *Client) CreateEntity(ctx context.Context, kind possync.EntityKind, fields possync.RemoteFields) (int64, error) {
	var resp insertResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/"+kindPath(kind), entityFieldsFromDomain(fields), &resp); err != nil {
		return 0, err
	}
	if err := checkAPIError(resp.Error); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// UpdateEntity overwrites an entity's fields on the POS
func (c *Client) UpdateEntity(ctx context.Context, kind possync.EntityKind, remoteID int64, fields possync.RemoteFields) error {
	path := fmt.Sprintf("/api/v1/%s/%d", kindPath(kind), remoteID)
	var resp updateResponse
	if err := c.doRequest(ctx, http.MethodPut, path, entityFieldsFromDomain(fields), &resp); err != nil {
		return err
	}
	return checkAPIError(resp.Error)
}

// UpdateModifierGroup replaces one modifier slot of a POS product
func (c *Client) UpdateModifierGroup(ctx context.Context, productRemoteID int64, group possync.RemoteModifierGroup) error {
	path := fmt.Sprintf("/api/v1/products/%d/modifiers/%d", productRemoteID, group.Slot)
	body := modifierGroupPayload{
		Title:              group.Title,
		MultiSelect:        group.MultiSelect,
		MinSelect:          group.MinSelect,
		MaxSelect:          group.MaxSelect,
		RequiredOnWeb:      group.RequiredOnWeb,
		RequiredOnRegister: group.RequiredOnRegister,
		DefaultMemberID:    group.DefaultMemberID,
		MemberIDs:          group.MemberIDs,
	}
	var resp updateResponse
	if err := c.doRequest(ctx, http.MethodPut, path, body, &resp); err != nil {
		return err
	}
	return checkAPIError(resp.Error)
}

// FindCustomerByEmail looks up a customer by email
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (*possync.RemoteCustomer, error) {
	path := "/api/v1/customers?email=" + url.QueryEscape(email)
	var resp customerResponse
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if err := checkAPIError(resp.Error); err != nil {
		return nil, err
	}
	if resp.Customer == nil {
		return nil, possync.ErrCustomerNotFound
	}
	return &possync.RemoteCustomer{
		ID:    resp.Customer.ID,
		Email: resp.Customer.Email,
		Name:  resp.Customer.Name,
	}, nil
}

// CreateCustomer inserts a customer and returns the POS-assigned id
func (c *Client) CreateCustomer(ctx context.Context, fields possync.CustomerFields) (int64, error) {
	body := customerFieldsPayload{
		Email:   fields.Email,
		Name:    fields.Name,
		Phone:   fields.Phone,
		Address: fields.Address,
		Zip:     fields.Zip,
		City:    fields.City,
	}
	var resp insertResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/customers", body, &resp); err != nil {
		return 0, err
	}
	if err := checkAPIError(resp.Error); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// CreateOrder submits a complete order and returns the POS order id
func (c *Client) CreateOrder(ctx context.Context, submission possync.OrderSubmission) (int64, error) {
	body := orderPayload{
		CustomerID:   submission.CustomerID,
		DeliveryMode: submission.DeliveryMode,
		Planned:      submission.Planned,
		PlannedFor:   submission.PlannedFor,
		Discount:     submission.Discount,
		Remark:       submission.Remark,
		OnlinePaid:   submission.OnlinePaid,
		Lines:        make([]orderLinePayload, 0, len(submission.Lines)),
	}
	for i := range submission.Lines {
		line := submission.Lines[i]
		body.Lines = append(body.Lines, orderLinePayload{
			ProductID:   line.ProductID,
			Price:       line.Price.StringFixed(2),
			ModifierIDs: line.ModifierIDs,
		})
	}

	var resp insertResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/orders", body, &resp); err != nil {
		return 0, err
	}
	if err := checkAPIError(resp.Error); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// doRequest performs one POS API call and decodes the JSON response into out.
// Network failures and 5xx statuses surface as ErrRemoteUnavailable; 4xx
// statuses as ErrRemoteRejected.
func (c *Client) doRequest(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerLicenseName, c.licenseName)
	req.Header.Set(headerLicenseToken, c.licenseToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s after %s: %v",
			possync.ErrRemoteUnavailable, method, path, time.Since(start).Round(time.Millisecond), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", possync.ErrRemoteUnavailable, err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: HTTP %d on %s %s", possync.ErrRemoteUnavailable, resp.StatusCode, method, path)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: HTTP %d on %s %s: %s",
			possync.ErrRemoteRejected, resp.StatusCode, method, path, truncate(data, 200))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", possync.ErrRemoteRejected, err)
	}
	return nil
}

// checkAPIError converts an embedded envelope error into ErrRemoteRejected
func checkAPIError(apiErr *apiError) error {
	if apiErr == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %s", possync.ErrRemoteRejected, apiErr.Code, apiErr.Message)
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
