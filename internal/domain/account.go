package domain

type (
	Username    = string
	DisplayName = string
	Email       = string
	Password    = string
)

// Account is the persisted identity record. Username is the sole lookup
// key and is immutable once created (case-sensitive).
type Account struct {
	Username    Username
	DisplayName DisplayName
	Email       Email
	PassDigest  string
}

type Credentials struct {
	Username Username
	Password Password
}

// Registration carries the raw registration form fields. Validation order
// (missing fields, password mismatch, username taken) is enforced by the
// auth service, not here.
type Registration struct {
	DisplayName     DisplayName
	Username        Username
	Email           Email
	Password        Password
	ConfirmPassword Password
}
