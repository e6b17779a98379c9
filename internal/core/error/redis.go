package errx

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

const RedisErrorMessage = "session store unavailable, please try again"

// WrapRedis maps Redis errors onto AppError. redis.Nil is left to callers,
// which treat it as an absent key.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return err
	}
	return Collaborator(err, "session_unavailable", RedisErrorMessage)
}
