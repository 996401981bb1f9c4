package validator_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quip/internal/domain"
	"quip/internal/validator"
)

func TestRemote_Verdicts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		switch r.URL.Path {
		case validator.LoginPath:
			var req validator.LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Username == "demo" && req.Password == "password" {
				_ = json.NewEncoder(w).Encode(domain.Accept(validator.DemoIdentity))
				return
			}
			_ = json.NewEncoder(w).Encode(domain.Reject(validator.ReasonInvalidCredentials))
		case validator.SignupPath:
			var req validator.SignupRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			_ = json.NewEncoder(w).Encode(domain.Accept(domain.Identity{ID: "42", Username: req.Username, Email: req.Email}))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := validator.NewRemote(srv.URL+"/", srv.Client())
	ctx := context.Background()

	v, err := c.ValidateLogin(ctx, "demo", "password")
	if err != nil || !v.Accepted || v.Identity != validator.DemoIdentity {
		t.Fatalf("login: v=%+v err=%v", v, err)
	}
	v, err = c.ValidateLogin(ctx, "demo", "nope")
	if err != nil || v.Accepted || v.Reason != validator.ReasonInvalidCredentials {
		t.Fatalf("rejected login: v=%+v err=%v", v, err)
	}
	v, err = c.ValidateSignup(ctx, "newuser", "new@example.com", "secret1")
	if err != nil || !v.Accepted || v.Identity.ID != "42" || v.Identity.Username != "newuser" {
		t.Fatalf("signup: v=%+v err=%v", v, err)
	}
}

func TestRemote_Faults(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{"))
		},
		"accepted without identity": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"accepted":true}`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			c := validator.NewRemote(srv.URL, srv.Client())
			if _, err := c.ValidateLogin(context.Background(), "demo", "password"); err == nil {
				t.Fatal("expected fault")
			}
		})
	}
}

func TestRemote_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := validator.NewRemote(url, nil)
	if _, err := c.ValidateSignup(context.Background(), "abc", "a@b", "123456"); err == nil {
		t.Fatal("expected fault for unreachable service")
	}
}
