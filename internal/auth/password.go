package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	cost int
	// dummyHash is compared against when no user matched, so a miss costs
	// about as much time as a wrong password.
	dummyHash []byte
}

// NewPasswordHasher creates a hasher with the default cost.
func NewPasswordHasher() *PasswordHasher {
	return NewPasswordHasherWithCost(bcryptCost)
}

// NewPasswordHasherWithCost creates a hasher with an explicit bcrypt cost.
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("dummy-password"), cost)
	return &PasswordHasher{cost: cost, dummyHash: dummy}
}

// Hash returns the bcrypt hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// VerifyDummy burns one comparison and always reports false.
func (h *PasswordHasher) VerifyDummy(password string) bool {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
	return false
}
