package config

import (
	"os"
	"time"
)

var JWTSecret []byte
var JWTExpiration time.Duration

func init() {
	JWTSecret = []byte(getEnv("JWT_SECRET", "camprating-dev-secret-change-me"))
	JWTExpiration = jwtExpiration()
}

// jwtExpiration reads JWT_EXPIRATION as a Go duration string (e.g. "2h"),
// falling back to a day.
func jwtExpiration() time.Duration {
	if d, err := time.ParseDuration(os.Getenv("JWT_EXPIRATION")); err == nil && d > 0 {
		return d
	}
	return 24 * time.Hour
}
