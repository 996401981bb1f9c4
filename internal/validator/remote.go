package validator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"quip/internal/domain"
)

// Wire paths served by an identity service.
const (
	LoginPath  = "/login"
	SignupPath = "/signup"
)

// maxResponseBytes bounds how much of a response body is decoded.
const maxResponseBytes = 1 << 20

var errEmptyIdentity = errors.New("identity service accepted without an identity")

// LoginRequest is the JSON body of POST /login.
type LoginRequest struct {
	Username domain.Username `json:"username"`
	Password string          `json:"password"`
}

// SignupRequest is the JSON body of POST /signup.
type SignupRequest struct {
	Username domain.Username `json:"username"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
}

// Remote asks an HTTP identity service for verdicts. The service answers
// 200 with a domain.Verdict for both outcomes; any other status is a fault.
type Remote struct {
	Base string
	HTTP *http.Client
}

// NewRemote returns a Remote for base using client (http.DefaultClient if nil).
func NewRemote(base string, client *http.Client) *Remote {
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{Base: strings.TrimRight(base, "/"), HTTP: client}
}

// ValidateLogin posts the credentials to /login.
func (c *Remote) ValidateLogin(
	ctx context.Context,
	username domain.Username,
	password string,
) (domain.Verdict, error) {
	return c.post(ctx, LoginPath, LoginRequest{Username: username, Password: password})
}

// ValidateSignup posts the registration to /signup.
func (c *Remote) ValidateSignup(
	ctx context.Context,
	username domain.Username,
	email string,
	password string,
) (domain.Verdict, error) {
	return c.post(ctx, SignupPath, SignupRequest{Username: username, Email: email, Password: password})
}

func (c *Remote) post(ctx context.Context, path string, in any) (domain.Verdict, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return domain.Verdict{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return domain.Verdict{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return domain.Verdict{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return domain.Verdict{}, fmt.Errorf("identity post %s: %s", path, resp.Status)
	}

	var v domain.Verdict
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&v); err != nil {
		return domain.Verdict{}, fmt.Errorf("identity post %s: decode: %w", path, err)
	}
	if v.Accepted && v.Identity.IsZero() {
		return domain.Verdict{}, errEmptyIdentity
	}
	if !v.Accepted {
		// A rejection carries only its reason.
		v = domain.Reject(v.Reason)
	}
	return v, nil
}

// Compile-time assertion that Remote implements domain.IdentityValidator.
var _ domain.IdentityValidator = (*Remote)(nil)
