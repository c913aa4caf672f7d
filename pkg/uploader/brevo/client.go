// Package brevo provides an uploader.Client implementation backed by the
// Brevo (formerly Sendinblue) contacts API.
package brevo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"prospector/pkg/domain"
	"prospector/pkg/serrors"
	"prospector/pkg/uploader"
	"strings"
)

// DefaultBaseURL is the address of the Brevo REST API.
const DefaultBaseURL = "https://api.brevo.com"

// Client talks to the Brevo contacts API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	listID     int
}

// Options configure the Brevo client.
type Options struct {
	// BaseURL overrides the API address, mainly for tests. Empty means
	// DefaultBaseURL.
	BaseURL string
	// APIKey is the api-key header value. Required.
	APIKey string
	// ListID is the contact list new leads are attached to.
	ListID int
}

// New constructs a Client using the provided http.Client.
func New(httpClient *http.Client, opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     opts.APIKey,
		listID:     opts.ListID,
	}
}

// contactAttributes carries the Brevo attribute map for a contact.
type contactAttributes struct {
	FirstName string `json:"FIRSTNAME"`
	Company   string `json:"COMPANY"`
	Phone     string `json:"PHONE"`
	Website   string `json:"WEBSITE"`
}

// createContactReq is the payload for POST /v3/contacts.
type createContactReq struct {
	Email      string            `json:"email"`
	Attributes contactAttributes `json:"attributes"`
	ListIDs    []int             `json:"listIds"`
}

// Upload creates the lead as a Brevo contact on the configured list.
// HTTP 200 and 201 are success; 429 maps to ErrRateLimited; any other status
// or transport failure is an error. The call is never retried here.
func (c *Client) Upload(ctx context.Context, lead domain.Lead) error {
	// https://developers.brevo.com/reference/createcontact
	bodyBytes, err := json.Marshal(createContactReq{
		Email: lead.Email,
		Attributes: contactAttributes{
			FirstName: lead.Name,
			Company:   lead.Company,
			Phone:     lead.Phone,
			Website:   lead.Website,
		},
		ListIDs: []int{c.listID},
	})
	if err != nil {
		return fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx,
		http.MethodPost,
		c.baseURL+"/v3/contacts",
		strings.NewReader(string(bodyBytes)))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return serrors.Wrap(serrors.ErrUnavailable, err, "could not send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return serrors.With(serrors.ErrRateLimited, "rate limited: %s", strings.TrimSpace(string(b)))
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	return nil
}

// Ensure Client conforms to the uploader.Client interface at compile time.
var _ uploader.Client = (*Client)(nil)
