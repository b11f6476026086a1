package utilities

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plain password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether password matches the bcrypt hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BcryptHasher exposes HashPassword and VerifyPassword as a value services can depend on.
type BcryptHasher struct{}

// Hash implements the hashing half of the credential primitive
func (BcryptHasher) Hash(password string) (string, error) { return HashPassword(password) }

// Verify implements the verification half of the credential primitive
func (BcryptHasher) Verify(hash, password string) bool { return VerifyPassword(hash, password) }
