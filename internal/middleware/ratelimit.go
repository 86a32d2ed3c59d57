package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	rd "github.com/redis/go-redis/v9"
)

// luaRateLimit：Redis滑動ウィンドウのLuaスクリプト（原子操作）。
// KEYS[1]=キー、ARGV[1]=現在時刻、ARGV[2]=ウィンドウ開始、ARGV[3]=ウィンドウ秒数、
// ARGV[4]=メンバー、ARGV[5]=上限。上限超過なら-1を返す
const luaRateLimit = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local windowStart = tonumber(ARGV[2])
local windowSec = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '0', windowStart)

local count = redis.call('ZCARD', key)

if count < tonumber(ARGV[5]) then
  redis.call('ZADD', key, now, member)
  redis.call('EXPIRE', key, windowSec)
  return count + 1
else
  return -1
end
`

// RedisRateLimit はチェックアウトなど書き込みルートの連打を抑える。
// キーはログイン済みならuser_id、ゲストはIP。
// Redisが落ちているときは素通し（フェイルオープン）
func RedisRateLimit(rdb *rd.Client, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var key string
			if id, ok := GetIdentity(c); ok {
				key = fmt.Sprintf("rate_limit:orders:user:%d", id.UserID)
			} else {
				key = fmt.Sprintf("rate_limit:orders:ip:%s", c.RealIP())
			}

			now := time.Now().Unix()
			windowSec := int64(window.Seconds())
			windowStart := now - windowSec
			member := fmt.Sprintf("%d-%d", now, time.Now().UnixNano())

			res, err := rdb.Eval(c.Request().Context(), luaRateLimit, []string{key},
				now, windowStart, windowSec, member, limit).Int()
			if err != nil {
				return next(c)
			}

			if res < 0 {
				return c.JSON(http.StatusTooManyRequests, errorJSON("too many requests"))
			}

			return next(c)
		}
	}
}
