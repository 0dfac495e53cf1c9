package domain

import "golang.org/x/crypto/bcrypt"

// AccountType represents the role of a user profile.
type AccountType int

const (
	AccountTypeUser AccountType = iota
	AccountTypeAdmin
)

func (t AccountType) String() string {
	switch t {
	case AccountTypeAdmin:
		return "admin"
	default:
		return "user"
	}
}

const (
	minNameLength = 1
	maxNameLength = 50
)

// UserProfile holds a user's identity and credential. The credential is
// stored as a bcrypt hash; the authenticated flag is transient and derived
// from the last Authenticate call only.
type UserProfile struct {
	username      string
	email         string
	passwordHash  []byte
	accountType   AccountType
	firstName     string
	lastName      string
	authenticated bool
}

// NewUserProfile creates a profile with a hashed credential. First and last
// name are validated on construction with the same rule as the setters.
func NewUserProfile(username, email, password string, accountType AccountType, firstName, lastName string) (*UserProfile, error) {
	if err := validateName(firstName); err != nil {
		return nil, err
	}
	if err := validateName(lastName); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewInternalError("failed to hash password", err)
	}
	return &UserProfile{
		username:     username,
		email:        email,
		passwordHash: hash,
		accountType:  accountType,
		firstName:    firstName,
		lastName:     lastName,
	}, nil
}

// Authenticate compares the given credentials against the stored ones and
// records the outcome. A failed attempt clears a previously set flag.
func (u *UserProfile) Authenticate(email, password string) bool {
	u.authenticated = email == u.email &&
		bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) == nil
	return u.authenticated
}

// IsAuthenticated reports the outcome of the last Authenticate call.
func (u *UserProfile) IsAuthenticated() bool {
	return u.authenticated
}

func (u *UserProfile) Username() string         { return u.username }
func (u *UserProfile) Email() string            { return u.email }
func (u *UserProfile) AccountType() AccountType { return u.accountType }
func (u *UserProfile) FirstName() string        { return u.firstName }
func (u *UserProfile) LastName() string         { return u.lastName }

// SetAccountType changes the user's role.
func (u *UserProfile) SetAccountType(t AccountType) {
	u.accountType = t
}

// SetFirstName updates the first name; the old value is kept on failure.
func (u *UserProfile) SetFirstName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	u.firstName = name
	return nil
}

// SetLastName updates the last name; the old value is kept on failure.
func (u *UserProfile) SetLastName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	u.lastName = name
	return nil
}

func validateName(name string) error {
	if len(name) < minNameLength || len(name) > maxNameLength {
		return NewValidationError("name must be between 1 and 50 characters")
	}
	return nil
}
