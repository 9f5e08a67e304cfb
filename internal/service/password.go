package service

import "golang.org/x/crypto/bcrypt"

// Work factor is fixed at build time, not derived per call.
const bcryptCost = 12

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword treats every bcrypt failure, including a malformed or
// foreign-format stored hash, as a plain mismatch. Callers must not be able
// to tell a corrupt hash apart from a wrong password.
func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
