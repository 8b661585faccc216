package consts

// Redis 键都带用途前缀，避免不同用途的键互相覆盖
const (
	RateLimitAuthKey  = "rate:auth:"
	RateLimitAPIKey   = "rate:api:"
	TokenBlacklistKey = "auth:blacklist:"
)
