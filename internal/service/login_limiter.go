package service

import (
	"fmt"
	"sync"
	"time"
)

const (
	defaultLoginWindow      = 15 * time.Minute
	defaultLoginMaxAttempts = 5
)

type loginWindow struct {
	startedAt time.Time
	attempts  int
}

// RateLimitedError 登录被限流，携带窗口剩余等待时长
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("too many login attempts, retry in %ds", e.RetryAfterSeconds())
}

func (e *RateLimitedError) Is(target error) bool {
	return target == ErrLoginRateLimited
}

// RetryAfterSeconds 剩余等待秒数（向上取整，至少 1 秒）
func (e *RateLimitedError) RetryAfterSeconds() int {
	seconds := int((e.RetryAfter + time.Second - 1) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

// LoginLimiter 登录固定窗口限流器
// 按标识（用户名或用户名+IP）独立计数，窗口到期后重新计数
type LoginLimiter struct {
	mu          sync.Mutex
	windows     map[string]loginWindow
	window      time.Duration
	maxAttempts int
	now         func() time.Time
}

// NewLoginLimiter 创建登录限流器
func NewLoginLimiter(window time.Duration, maxAttempts int) *LoginLimiter {
	if window <= 0 {
		window = defaultLoginWindow
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultLoginMaxAttempts
	}
	return &LoginLimiter{
		windows:     make(map[string]loginWindow),
		window:      window,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Allow 判断标识是否允许再次尝试
func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || l.now().Sub(w.startedAt) >= l.window {
		return true
	}
	return w.attempts < l.maxAttempts
}

// RecordFailure 记录一次失败尝试
func (l *LoginLimiter) RecordFailure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.startedAt) >= l.window {
		l.windows[key] = loginWindow{startedAt: now, attempts: 1}
		return
	}
	w.attempts++
	l.windows[key] = w
}

// Reset 登录成功后清空该标识的计数
func (l *LoginLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// RetryAfter 返回窗口剩余时长，未被限流时为 0
func (l *LoginLimiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok {
		return 0
	}
	elapsed := l.now().Sub(w.startedAt)
	if elapsed >= l.window || w.attempts < l.maxAttempts {
		return 0
	}
	return l.window - elapsed
}
