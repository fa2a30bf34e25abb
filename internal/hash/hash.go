package hash

import "golang.org/x/crypto/bcrypt"

// Hash returns a bcrypt hash of the given password. A new salt is generated
// on every call, so hashing the same password twice yields different values.
func Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches hashedPassword. The comparison is
// constant-time inside bcrypt.
func Verify(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
