package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword generates a bcrypt hash of the given plaintext password.
// bcrypt salts internally, so hashing the same password twice yields different
// digests, each independently verifiable.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// digest. Malformed digests simply fail verification; this never panics.
func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
