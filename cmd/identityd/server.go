package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"quip/internal/domain"
	"quip/internal/validator"
)

const maxRequestBytes = 64 << 10

type server struct {
	log       *zap.Logger
	validator domain.IdentityValidator
}

func newServer(log *zap.Logger, v domain.IdentityValidator) http.Handler {
	s := &server{log: log, validator: v}
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+validator.LoginPath, s.login)
	mux.HandleFunc("POST "+validator.SignupPath, s.signup)
	return s.accessLog(mux)
}

func (s *server) login(w http.ResponseWriter, r *http.Request) {
	var req validator.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	v, err := s.validator.ValidateLogin(r.Context(), req.Username, req.Password)
	s.answer(w, "login", v, err)
}

func (s *server) signup(w http.ResponseWriter, r *http.Request) {
	var req validator.SignupRequest
	if !decode(w, r, &req) {
		return
	}
	v, err := s.validator.ValidateSignup(r.Context(), req.Username, req.Email, req.Password)
	s.answer(w, "signup", v, err)
}

func (s *server) answer(w http.ResponseWriter, op string, v domain.Verdict, err error) {
	if err != nil {
		s.log.Error("validator fault", zap.String("op", op), zap.Error(err))
		http.Error(w, "identity service error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func decode(w http.ResponseWriter, r *http.Request, out any) bool {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		msg := "malformed request"
		if errors.Is(err, io.EOF) {
			msg = "empty request"
		}
		http.Error(w, msg, http.StatusBadRequest)
		return false
	}
	return true
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (s *server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", sw.status),
			zap.Int("bytes", sw.bytes),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
