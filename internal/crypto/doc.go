// Package crypto exposes the small set of primitives quip needs.
//
// Contents
//
//   - Argon2id password hashing in PHC string form (HashPassword,
//     VerifyPassword)
//   - Monotonic ULID identifiers for newly issued identities (NewID)
//   - Best-effort memory wiping for derived keys (Wipe)
package crypto
