package tui

import (
	"fmt"
	"net"
	"sync"

	"github.com/charmbracelet/ssh"
)

// connLimiter caps concurrent sessions per remote IP. A max of 0 disables it.
type connLimiter struct {
	mu     sync.Mutex
	max    int
	counts map[string]int
}

func newConnLimiter(limit int) *connLimiter {
	return &connLimiter{max: limit, counts: make(map[string]int)}
}

// acquire reserves a slot for ip. It returns the count the connection
// would have had and whether it was admitted.
func (l *connLimiter) acquire(ip string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := l.counts[ip] + 1
	if l.max > 0 && n > l.max {
		return n, false
	}
	l.counts[ip] = n
	return n, true
}

func (l *connLimiter) release(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counts[ip]--
	if l.counts[ip] <= 0 {
		delete(l.counts, ip)
	}
}

func (l *connLimiter) count(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[ip]
}

// remoteIP returns the IP of the session peer without the port.
func remoteIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

// limitMiddleware rejects sessions over the per-IP limit.
func (s *SSHServer) limitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		ip := remoteIP(sshSession)

		n, ok := s.limiter.acquire(ip)
		if !ok {
			s.logger.Warn("connection denied: IP limit exceeded", "ip", ip, "attempted", n, "limit", s.limiter.max)
			fmt.Fprintf(sshSession, "Too many active connections from your IP (%d/%d). Please try again later.\r\n", n, s.limiter.max)
			sshSession.Close()
			return
		}
		defer s.limiter.release(ip)

		s.logger.Debug("connection accepted", "ip", ip, "count", n)
		next(sshSession)
	}
}
