// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (identity, verdicts, session snapshots) and contracts
// (validator, stores, session service) only.
package domain
