package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt 加盐哈希（cost=10，即 DefaultCost）
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword 恒定时间比较，防时序侧信道
func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
