package utils

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor for account and login-audit hashes.
// Ten rounds keeps a login check around the 50-100ms mark on commodity
// hardware, and hashes written with that cost by earlier deployments still
// verify unchanged.
const PasswordCost = 10

// HashPassword returns the bcrypt hash of plain. Inputs longer than 72 bytes
// fail with bcrypt.ErrPasswordTooLong.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether plain matches hash. A malformed hash
// never matches.
func CheckPasswordHash(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
