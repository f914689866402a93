package middleware

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/DaDaTzz/gallery-backend/internal/config"
	"github.com/DaDaTzz/gallery-backend/internal/db"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

var errNoRedis = errors.New("redis client is nil")

type IPRateLimiter struct {
	ips sync.Map
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		r: r,
		b: b,
	}

	go i.cleanupLoop()

	return i
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen = time.Now()
		return c.limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// Double check
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen = time.Now()
		return c.limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	i.ips.Store(ip, &client{limiter: limiter, lastSeen: time.Now()})

	return limiter
}

func (i *IPRateLimiter) cleanupLoop() {
	for {
		time.Sleep(1 * time.Minute)
		i.ips.Range(func(key, value interface{}) bool {
			client := value.(*client)
			if time.Since(client.lastSeen) > 3*time.Minute {
				i.ips.Delete(key)
			}
			return true
		})
	}
}

// allowByRedisRateLimit 按秒固定窗口计数，窗口容量取 burst 与 rps 的较大者。
// rps 或 burst 非正时视为关闭限流。
func allowByRedisRateLimit(rdb *redis.Client, scope, ip string, rps float64, burst int) (bool, error) {
	if rps <= 0 || burst <= 0 {
		return true, nil
	}
	if rdb == nil {
		return false, errNoRedis
	}

	window := time.Now().Unix()
	key := db.RedisKey("rate", scope, ip, strconv.FormatInt(window, 10))
	capacity := int64(math.Max(float64(burst), math.Ceil(rps)))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	pipe := rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 2*time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= capacity, nil
}

// RateLimitMiddleware 按客户端 IP 限流，配置读取自 rate_limit 段。
// Redis 可用时跨实例计数，出错时回退到进程内令牌桶。
func RateLimitMiddleware(scope string) gin.HandlerFunc {
	// 每个 scope 共用一个 IPRateLimiter 实例
	var limiter *IPRateLimiter
	var once sync.Once

	return func(c *gin.Context) {
		cfg := config.Get().RateLimit
		if !cfg.Enabled {
			c.Next()
			return
		}

		currentRPS := cfg.UploadRPS
		currentBurst := cfg.UploadBurst
		ip := c.ClientIP()

		if rdb := db.GetRedisClient(); rdb != nil {
			allowed, err := allowByRedisRateLimit(rdb, scope, ip, currentRPS, currentBurst)
			if err == nil {
				if !allowed {
					tooManyRequests(c)
					return
				}
				c.Next()
				return
			}
			log.Printf("⚠️ Redis 限流失败，回退内存限流: %v", err)
		}

		once.Do(func() {
			limiter = NewIPRateLimiter(rate.Limit(currentRPS), currentBurst)
		})

		l := limiter.getLimiter(ip)

		// 动态更新 limit 和 burst (如果配置发生变更)
		if l.Limit() != rate.Limit(currentRPS) {
			l.SetLimit(rate.Limit(currentRPS))
		}
		if l.Burst() != currentBurst {
			l.SetBurst(currentBurst)
		}

		if !l.Allow() {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}

func tooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, gin.H{"code": "rate_limited", "error": "请求过于频繁，请稍后再试"})
	c.Abort()
}
