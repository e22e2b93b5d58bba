// Package preview checks that a gallery image URL points at an image.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"syscall"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// sniffBytes is how much of the body is read to detect the type.
const sniffBytes = 3072

var (
	ErrUnsupportedScheme = errors.New("image URL must be http or https")
	ErrNotImage          = errors.New("URL does not point to an image")
	ErrPrivateAddress    = errors.New("image host resolves to a private address")
)

// sharedAddressSpace is the carrier-grade NAT range, which netip does not
// count as private.
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/svg+xml",
	"image/avif",
	"image/bmp",
}

// Result describes a previewable image.
type Result struct {
	URL  string `json:"url"`
	MIME string `json:"mime"`
}

type Checker struct {
	client *http.Client
	logger *zap.Logger
}

// NewChecker returns a Checker that refuses to connect to loopback, private
// and link-local addresses.
func NewChecker(timeout time.Duration, logger *zap.Logger) *Checker {
	return newChecker(timeout, logger, false)
}

func newChecker(timeout time.Duration, logger *zap.Logger, allowPrivate bool) *Checker {
	dialer := &net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}
	if !allowPrivate {
		dialer.Control = rejectPrivate
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	// A proxy would be dialed instead of the image host.
	transport.Proxy = nil

	return &Checker{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		logger: logger.Named("preview"),
	}
}

// rejectPrivate runs after name resolution, so hostnames pointing at
// internal addresses are caught as well as literal IPs.
func rejectPrivate(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return err
	}
	if !publicAddr(addr) {
		return ErrPrivateAddress
	}
	return nil
}

func publicAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsGlobalUnicast() &&
		!addr.IsPrivate() &&
		!sharedAddressSpace.Contains(addr)
}

// Check fetches the first bytes of rawURL and sniffs their type.
func (c *Checker) Check(ctx context.Context, rawURL string) (Result, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Result{}, ErrUnsupportedScheme
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("build preview request: %w", err)
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", sniffBytes-1))

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("Preview fetch failed", zap.String("url", u.String()), zap.Error(err))
		return Result{}, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return Result{}, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	mtype, err := mimetype.DetectReader(io.LimitReader(resp.Body, sniffBytes))
	if err != nil {
		return Result{}, fmt.Errorf("read image: %w", err)
	}
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		c.logger.Debug("Preview is not an image", zap.String("url", u.String()), zap.String("mime", mtype.String()))
		return Result{}, ErrNotImage
	}

	return Result{URL: u.String(), MIME: mtype.String()}, nil
}
