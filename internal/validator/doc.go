// Package validator implements domain.IdentityValidator.
//
// Every implementation answers with one of two outcomes, accept with an
// identity or reject with a user-facing reason; a returned error means the
// validator could not decide (a fault).
//
//   - Mock reproduces the placeholder backend: only demo/password logs in and
//     the name "demo" is taken.
//   - Directory keeps real accounts on disk with Argon2id password hashes.
//   - Remote asks an identity service over HTTP (see cmd/identityd).
//
// Signup input checks are shared by all policies and always run in the same
// order so the first failing check decides the message.
package validator
