package types

// Account is a directory entry: an identity plus its password hash.
type Account struct {
	Identity     Identity `json:"identity"`
	PasswordHash string   `json:"password_hash"`
}
