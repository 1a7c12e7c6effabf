package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"statusflow/internal/core/domain/model/kernel"
	"statusflow/internal/core/ports"
	"statusflow/internal/pkg/errs"
)

var _ ports.StatusBackend = (*Client)(nil)

// maxErrorBody bounds how much of an error response is read for the message.
const maxErrorBody = 4 << 10

// Client talks to the service owning one workflow domain.
type Client struct {
	domain     string
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient creates a client for domain rooted at baseURL. The timeout of
// httpClient bounds every call.
func NewClient(domain, baseURL string, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(domain) == "" {
		return nil, errs.NewValueIsRequiredError("domain")
	}
	if httpClient == nil {
		return nil, errs.NewValueIsRequiredError("httpClient")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("baseURL", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("baseURL", fmt.Errorf("%q is not an absolute http url", baseURL))
	}
	return &Client{domain: domain, baseURL: u, httpClient: httpClient}, nil
}

func (c *Client) Domain() string {
	return c.domain
}

func (c *Client) FetchStatus(ctx context.Context, id kernel.UUID) (ports.EntitySnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.JoinPath(id.String()).String(), nil)
	if err != nil {
		return ports.EntitySnapshot{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.EntitySnapshot{}, c.unavailable("fetch", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return c.decodeEntity(resp.Body, id)
	case resp.StatusCode == http.StatusNotFound:
		return ports.EntitySnapshot{}, c.notFound(resp, id)
	default:
		return ports.EntitySnapshot{}, c.unavailable("fetch", c.statusError(resp))
	}
}

func (c *Client) RequestTransition(ctx context.Context, request ports.TransitionRequest) (ports.EntitySnapshot, error) {
	body, err := json.Marshal(transitionRequestDTO{
		EntityID:     request.EntityID.String(),
		TargetStatus: request.TargetStatus,
		Notes:        request.Notes,
	})
	if err != nil {
		return ports.EntitySnapshot{}, err
	}

	endpoint := c.baseURL.JoinPath(request.EntityID.String(), "transitions").String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.EntitySnapshot{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.EntitySnapshot{}, c.unavailable("transition", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return c.decodeEntity(resp.Body, request.EntityID)
	case http.StatusNoContent:
		return ports.EntitySnapshot{ID: request.EntityID}, nil
	case http.StatusNotFound:
		return ports.EntitySnapshot{}, c.notFound(resp, request.EntityID)
	case http.StatusConflict, http.StatusUnprocessableEntity:
		msg := c.message(resp)
		if msg == "" {
			msg = resp.Status
		}
		return ports.EntitySnapshot{}, fmt.Errorf("%w: %s", ports.ErrTransitionRejected, msg)
	default:
		return ports.EntitySnapshot{}, c.unavailable("transition", c.statusError(resp))
	}
}

func (c *Client) decodeEntity(r io.Reader, id kernel.UUID) (ports.EntitySnapshot, error) {
	var dto entityDTO
	if err := json.NewDecoder(r).Decode(&dto); err != nil {
		return ports.EntitySnapshot{}, c.unavailable("decode", err)
	}
	if dto.ID != "" {
		got, err := kernel.UUIDFromString(dto.ID)
		if err != nil {
			return ports.EntitySnapshot{}, c.unavailable("decode", err)
		}
		if !got.IsEqual(id) {
			return ports.EntitySnapshot{}, c.unavailable("decode", fmt.Errorf("response is for entity %s", got))
		}
	}
	return ports.EntitySnapshot{ID: id, Status: dto.Status}, nil
}

func (c *Client) statusError(resp *http.Response) error {
	if msg := c.message(resp); msg != "" {
		return fmt.Errorf("unexpected status %s: %s", resp.Status, msg)
	}
	return fmt.Errorf("unexpected status %s", resp.Status)
}

// message extracts a human readable reason from an error response.
func (c *Client) message(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var dto errorDTO
	if err := json.Unmarshal(raw, &dto); err == nil && dto.text() != "" {
		return dto.text()
	}
	return strings.TrimSpace(string(raw))
}

// notFound keeps the service's explanation, if it sent one, as the cause.
func (c *Client) notFound(resp *http.Response, id kernel.UUID) error {
	if msg := c.message(resp); msg != "" {
		return errs.NewObjectNotFoundErrorWithCause(c.domain, id.String(), errors.New(msg))
	}
	return errs.NewObjectNotFoundError(c.domain, id.String())
}

func (c *Client) unavailable(op string, cause error) error {
	return errors.Join(
		fmt.Errorf("%w: %s %s", ports.ErrBackendUnavailable, c.domain, op),
		cause,
	)
}
