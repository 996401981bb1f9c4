// Package main runs identityd, the HTTP identity service the quip CLI talks to
// when QUIP_IDENTITY_URL is set.
//
// HTTP API
//
//	POST /login  {"username","password"}
//	    Decide a login attempt.
//
//	POST /signup {"username","email","password"}
//	    Decide (and, for a directory, record) a registration.
//
// Both answer 200 with {"accepted":true,"identity":{"id","username","email"}}
// or {"accepted":false,"reason":"..."}. Malformed requests get 400; a
// validator failure gets 500 and no verdict.
//
// Behaviour
//
//   - Without --accounts the placeholder policy is served: only demo/password
//     logs in and "demo" is taken.
//   - With --accounts DIR accounts persist in DIR/accounts.json with Argon2id
//     password hashes. The demo account is seeded on first start.
//   - Every request is logged with method, path, status and duration.
//   - The default listen address is 127.0.0.1:8081.
package main
