package session

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

const (
	digits       = "0123456789"
	alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz" + digits
)

// RandomDigits returns n random decimal digits, used as the path fragment
func RandomDigits(n int) (string, error) {
	return randomString(digits, n)
}

// RandomPassword returns n random alphanumeric characters
func RandomPassword(n int) (string, error) {
	return randomString(alphanumeric, n)
}

func randomString(alphabet string, n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	buf := make([]byte, 4*n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	out := make([]byte, n)
	for i := range out {
		v := binary.LittleEndian.Uint32(buf[i*4:])
		out[i] = alphabet[v%uint32(len(alphabet))]
	}
	return string(out), nil
}
