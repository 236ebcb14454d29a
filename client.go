package adminctl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// API paths relative to the configured base URL. The remote API is the
// source of truth for naming; the unusual casing is theirs.
const (
	pathLogin            = "login"
	pathForgetPassword   = "forgetPassword"
	pathVerifyOTP        = "forgotVerifyotp"
	pathChangePassword   = "changePassword/"
	pathArticleList      = "Article/getArticle"
	pathArticleCreate    = "Article/createArticle"
	pathArticleUpdate    = "Article/updateArticle/"
	pathArticleDelete    = "Article/deleteArticle/"
	pathDealershipList   = "AutoDealerShip/allAutoDealerShip"
	pathDealershipCreate = "AutoDealerShip/addDataInEveryThing"
	pathDealershipDelete = "AutoDealerShip/deleteAutoDealerShip/"
	pathDashboardSummary = "getDashboard"
	pathDashboardGraphs  = "getGraphData"
)

// TokenSource provides the bearer token snapshot used for a single request.
// The token is read at request-construction time; requests never cache it.
type TokenSource interface {
	// Token returns the persisted token, or "" when none is stored.
	Token() (string, error)
}

// StaticToken is a TokenSource holding a fixed token. Mainly useful in tests.
type StaticToken string

// Token implements TokenSource
func (t StaticToken) Token() (string, error) { return string(t), nil }

// ClientConf configures a Client.
type ClientConf struct {
	// BaseURL is the API root; a trailing slash is appended if missing.
	BaseURL string
	// Timeout bounds every request. Zero leaves the transport default.
	Timeout time.Duration
}

// Client issues requests against the marketplace admin API. It normalizes
// the API's `{status, data, message}` envelope and maps failures onto the
// error taxonomy in errors.go. Authenticated requests take their bearer
// token from the TokenSource at construction time of each request.
type Client struct {
	rest    *resty.Client
	baseURL string
	tokens  TokenSource
}

// NewClient creates a Client for the given API and token source.
func NewClient(conf ClientConf, tokens TokenSource) *Client {
	base := conf.BaseURL
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	rest := resty.New()
	if conf.Timeout > 0 {
		rest.SetTimeout(conf.Timeout)
	}
	return &Client{
		rest:    rest,
		baseURL: base,
		tokens:  tokens,
	}
}

// HTTPClient exposes the underlying http.Client, e.g. for transport mocking
// in tests.
func (c *Client) HTTPClient() *http.Client {
	return c.rest.GetClient()
}

// envelope is the API's common response wrapper.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// newRequest builds a request, attaching the bearer token when
// authenticated is set. A missing token is reported as ErrNoToken without
// any network call.
func (c *Client) newRequest(ctx context.Context, authenticated bool) (*resty.Request, error) {
	req := c.rest.R().SetContext(ctx)
	if authenticated {
		token, err := c.tokens.Token()
		if err != nil {
			return nil, errors.Wrap(err, "reading persisted token")
		}
		if token == "" {
			return nil, ErrNoToken
		}
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req, nil
}

// decode normalizes a response into the envelope, preferring the body's
// message field for rejected requests and falling back to the HTTP status.
func decode(resp *resty.Response, err error) (*envelope, error) {
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	var env envelope
	if len(resp.Body()) > 0 {
		if jsonErr := json.Unmarshal(resp.Body(), &env); jsonErr != nil && !resp.IsError() {
			return nil, errors.Wrap(jsonErr, "decoding response body")
		}
	}
	if resp.IsError() {
		return nil, &ServerError{
			HTTPStatus: resp.StatusCode(),
			Status:     env.Status,
			Message:    env.Message,
		}
	}
	if env.Status != 0 && env.Status != http.StatusOK {
		return nil, &ServerError{
			HTTPStatus: resp.StatusCode(),
			Status:     env.Status,
			Message:    env.Message,
		}
	}
	return &env, nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string) (*envelope, error) {
	req, err := c.newRequest(ctx, true)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	return decode(req.Get(c.url(path)))
}

func (c *Client) postJSON(ctx context.Context, path string, body any, authenticated bool) (*envelope, error) {
	req, err := c.newRequest(ctx, authenticated)
	if err != nil {
		return nil, err
	}
	return decode(req.SetHeader("Content-Type", "application/json").SetBody(body).Post(c.url(path)))
}

func (c *Client) putJSON(ctx context.Context, path string, body any) (*envelope, error) {
	req, err := c.newRequest(ctx, true)
	if err != nil {
		return nil, err
	}
	return decode(req.SetHeader("Content-Type", "application/json").SetBody(body).Put(c.url(path)))
}

func (c *Client) delete(ctx context.Context, path string) (*envelope, error) {
	req, err := c.newRequest(ctx, true)
	if err != nil {
		return nil, err
	}
	return decode(req.Delete(c.url(path)))
}

// ImageFile is an optional image attachment for a multipart create request.
type ImageFile struct {
	Name    string
	Content io.Reader
}

// postMultipart submits fields (and the optional image) as multipart form
// data, matching what the API expects for create-with-upload endpoints.
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, image *ImageFile) (*envelope, error) {
	req, err := c.newRequest(ctx, true)
	if err != nil {
		return nil, err
	}
	req.SetMultipartFormData(fields)
	if image != nil {
		req.SetFileReader("image", image.Name, image.Content)
	}
	log.WithField("path", path).Debug("submitting multipart form")
	return decode(req.Post(c.url(path)))
}
