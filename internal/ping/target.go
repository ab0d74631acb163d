package ping

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrInvalidURL = errors.New("invalid url")

// Target is a validated absolute http(s) URL. Obtain one with Validate.
type Target struct {
	u *url.URL
}

// Validate parses raw and returns its canonical Target. Scheme and host are
// lower-cased and the fragment is dropped since it is never sent on the wire.
func Validate(raw string) (Target, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Target{}, fmt.Errorf("%w: empty url", ErrInvalidURL)
	}

	u, err := url.Parse(s)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	switch scheme := strings.ToLower(u.Scheme); scheme {
	case "http", "https":
		u.Scheme = scheme
	case "":
		return Target{}, fmt.Errorf("%w: missing scheme in %q", ErrInvalidURL, s)
	default:
		return Target{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}

	if u.Opaque != "" || u.Hostname() == "" {
		return Target{}, fmt.Errorf("%w: missing host in %q", ErrInvalidURL, s)
	}

	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""

	return Target{u: u}, nil
}

func (t Target) String() string {
	if t.u == nil {
		return ""
	}
	return t.u.String()
}

func (t Target) Scheme() string {
	if t.u == nil {
		return ""
	}
	return t.u.Scheme
}

// Host returns host[:port].
func (t Target) Host() string {
	if t.u == nil {
		return ""
	}
	return t.u.Host
}

// URL returns a copy; mutating it does not affect the Target.
func (t Target) URL() *url.URL {
	if t.u == nil {
		return nil
	}
	cp := *t.u
	return &cp
}

func (t Target) IsZero() bool { return t.u == nil }
