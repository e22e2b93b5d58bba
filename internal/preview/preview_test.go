package preview

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"go.uber.org/zap"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestCheck(t *testing.T) {
	img := pngBytes(t)
	mux := http.NewServeMux()
	mux.HandleFunc("/photo.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(img)
	})
	mux.HandleFunc("/page.html", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<!DOCTYPE html><html><body>hello</body></html>"))
	})
	mux.HandleFunc("/missing.png", http.NotFound)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	c := newChecker(2*time.Second, zap.NewNop(), true)
	ctx := context.Background()

	res, err := c.Check(ctx, ts.URL+"/photo.png")
	if err != nil {
		t.Fatalf("check png: %v", err)
	}
	if res.MIME != "image/png" || res.URL != ts.URL+"/photo.png" {
		t.Fatalf("result = %+v", res)
	}

	if _, err := c.Check(ctx, ts.URL+"/page.html"); !errors.Is(err, ErrNotImage) {
		t.Fatalf("html err = %v, want ErrNotImage", err)
	}
	if _, err := c.Check(ctx, ts.URL+"/missing.png"); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestCheckRejectsSchemes(t *testing.T) {
	c := NewChecker(time.Second, zap.NewNop())
	for _, raw := range []string{"file:///etc/passwd", "javascript:alert(1)", "ftp://example.com/a.png", "", "https://"} {
		if _, err := c.Check(context.Background(), raw); !errors.Is(err, ErrUnsupportedScheme) {
			t.Fatalf("%q: err = %v, want ErrUnsupportedScheme", raw, err)
		}
	}
}

func TestCheckTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(ts.Close)

	c := newChecker(100*time.Millisecond, zap.NewNop(), true)
	if _, err := c.Check(context.Background(), ts.URL+"/slow.png"); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestCheckRefusesPrivateHosts(t *testing.T) {
	img := pngBytes(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(img)
	}))
	t.Cleanup(ts.Close)

	c := NewChecker(2*time.Second, zap.NewNop())
	if _, err := c.Check(context.Background(), ts.URL+"/photo.png"); !errors.Is(err, ErrPrivateAddress) {
		t.Fatalf("loopback err = %v, want ErrPrivateAddress", err)
	}
}

func TestPublicAddr(t *testing.T) {
	cases := map[string]bool{
		"93.184.216.34":        true,
		"2606:4700::1111":      true,
		"127.0.0.1":            false,
		"10.1.2.3":             false,
		"172.16.0.1":           false,
		"192.168.1.10":         false,
		"169.254.169.254":      false,
		"100.64.0.1":           false,
		"0.0.0.0":              false,
		"::1":                  false,
		"fd00::1":              false,
		"fe80::1":              false,
		"::ffff:127.0.0.1":     false,
		"::ffff:93.184.216.34": true,
	}
	for raw, want := range cases {
		if got := publicAddr(netip.MustParseAddr(raw)); got != want {
			t.Errorf("publicAddr(%s) = %v, want %v", raw, got, want)
		}
	}
}
