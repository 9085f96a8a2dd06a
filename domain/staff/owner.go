package staff

import "time"

// Owner is keyed by phone number; identity is proven by exchanging a
// one-time access code over SMS.
type Owner struct {
	PhoneNumber string
	AccessCode  string
	IsVerified  bool
	CreatedAt   time.Time
	LastLogin   *time.Time
}
