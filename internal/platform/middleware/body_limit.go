package middleware

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// BodyLimit caps the request body size. The limit is a human-readable
// string ("64K", "1M"); a bare number means bytes and an unparsable
// value falls back to 1 MB. Oversized requests get 413, rejected early
// from Content-Length when the client sends one and otherwise while
// reading.
func BodyLimit(limit string) echo.MiddlewareFunc {
	max := parseSize(limit)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.Body == http.NoBody {
				return next(c)
			}
			if req.ContentLength > max {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large")
			}
			req.Body = &cappedBody{inner: req.Body, remaining: max}
			return next(c)
		}
	}
}

// cappedBody fails the read once more than the allowed bytes arrive, so
// the limit holds even without a trustworthy Content-Length.
type cappedBody struct {
	inner     io.ReadCloser
	remaining int64
	tripped   bool
}

func (b *cappedBody) Read(p []byte) (int, error) {
	if b.tripped {
		return 0, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large")
	}
	if int64(len(p)) > b.remaining+1 {
		p = p[:b.remaining+1]
	}
	n, err := b.inner.Read(p)
	b.remaining -= int64(n)
	if b.remaining < 0 {
		b.tripped = true
		return 0, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large")
	}
	return n, err
}

func (b *cappedBody) Close() error { return b.inner.Close() }

func parseSize(s string) int64 {
	const fallback = 1 << 20

	s = strings.ToUpper(strings.TrimSpace(s))
	var unit int64 = 1
	switch {
	case strings.HasSuffix(s, "G"):
		unit = 1 << 30
		s = strings.TrimSuffix(s, "G")
	case strings.HasSuffix(s, "M"):
		unit = 1 << 20
		s = strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "K"):
		unit = 1 << 10
		s = strings.TrimSuffix(s, "K")
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n * unit
}
