package identity

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

	"golang.org/x/oauth2/clientcredentials"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/httperr"
)

const upstreamName = "identity provider"

type User struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type CreateUserRequest struct {
	Connection string `json:"connection"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
}

type UserPatch struct {
	Email   *string `json:"email,omitempty"`
	Name    *string `json:"name,omitempty"`
	Picture *string `json:"picture,omitempty"`
}

func (p UserPatch) Empty() bool {
	return p.Email == nil && p.Name == nil && p.Picture == nil
}

// ManagementClient talks to the provider's management REST API using a
// machine credential held by the server.
type ManagementClient struct {
	baseURL string
	http    *http.Client
}

// NewManagementClient uses httpClient as-is; it is expected to attach the
// management token (see ClientCredentialsHTTPClient).
func NewManagementClient(domain string, httpClient *http.Client) *ManagementClient {
	return &ManagementClient{
		baseURL: strings.TrimRight(domain, "/"),
		http:    httpClient,
	}
}

// ClientCredentialsHTTPClient returns a client that exchanges the machine
// credential for a management token and refreshes it when it expires.
func ClientCredentialsHTTPClient(domain, clientID, clientSecret string) *http.Client {
	base := strings.TrimRight(domain, "/")
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     base + "/oauth/token",
		EndpointParams: url.Values{
			"audience": {base + "/api/v2/"},
		},
	}

	client := cfg.Client(context.Background())
	client.Timeout = 15 * time.Second
	return client
}

func (m *ManagementClient) UserEmail(ctx context.Context, userID string) (string, error) {
	q := url.Values{"fields": {"email"}, "include_fields": {"true"}}

	var user User
	if err := m.do(ctx, http.MethodGet, "/api/v2/users/"+url.PathEscape(userID), q, nil, &user); err != nil {
		return "", err
	}
	return user.Email, nil
}

func (m *ManagementClient) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var user User
	if err := m.do(ctx, http.MethodPost, "/api/v2/users", nil, req, &user); err != nil {
		return nil, err
	}
	if user.UserID == "" {
		return nil, httperr.ErrUpstream(upstreamName, fmt.Errorf("create user: response has no user_id"))
	}
	return &user, nil
}

func (m *ManagementClient) AssignRole(ctx context.Context, roleID, userID string) error {
	body := map[string][]string{"users": {userID}}
	return m.do(ctx, http.MethodPost, "/api/v2/roles/"+url.PathEscape(roleID)+"/users", nil, body, nil)
}

func (m *ManagementClient) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	q := url.Values{"email": {email}, "fields": {"user_id"}, "include_fields": {"true"}}

	var users []User
	if err := m.do(ctx, http.MethodGet, "/api/v2/users-by-email", q, nil, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, httperr.ErrUpstream(upstreamName, fmt.Errorf("no user with email %s", email))
	}
	return &users[0], nil
}

func (m *ManagementClient) PatchUser(ctx context.Context, userID string, patch UserPatch) error {
	return m.do(ctx, http.MethodPatch, "/api/v2/users/"+url.PathEscape(userID), nil, patch, nil)
}

func (m *ManagementClient) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
	out any,
) error {

	endpoint := m.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := m.http.Do(req)
	if err != nil {
		return httperr.ErrUpstream(upstreamName, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return httperr.ErrUpstream(upstreamName,
			fmt.Errorf("%s %s: status %d: %s", method, path, res.StatusCode, strings.TrimSpace(string(msg))))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return httperr.ErrUpstream(upstreamName, fmt.Errorf("decode %s %s: %w", method, path, err))
	}
	return nil
}
