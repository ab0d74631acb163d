package record

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/NordCoder/webping/internal/ping"
	"github.com/spf13/cast"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ParamURL            = "url"
	ParamExpectedString = "expected_string"
	ParamReturnHeaders  = "return_headers"
	ParamTimeout        = "timeout"
	ParamComputeDigests = "compute_digests"
)

var ErrInvalidParam = errors.New("invalid parameter")

// Request is one probe invocation as received from a caller.
type Request struct {
	URL    string
	Config ping.Config
}

// Parse reads the invocation parameters through lookup, starting from
// defaults. A missing url is reported as ping.ErrInvalidURL; the URL itself is
// validated later by the pinger.
func Parse(lookup func(name string) (any, bool), defaults ping.Config) (Request, error) {
	req := Request{Config: defaults}

	raw, _ := lookup(ParamURL)
	req.URL = strings.TrimSpace(cast.ToString(raw))
	if req.URL == "" {
		return Request{}, fmt.Errorf("%w: %s is required", ping.ErrInvalidURL, ParamURL)
	}

	if v, ok := lookup(ParamExpectedString); ok {
		req.Config.ExpectedString = cast.ToString(v)
	}

	if v, ok := lookup(ParamReturnHeaders); ok && !blank(v) {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return Request{}, fmt.Errorf("%w: %s: %v", ErrInvalidParam, ParamReturnHeaders, err)
		}
		req.Config.ReturnHeaders = b
	}

	if v, ok := lookup(ParamComputeDigests); ok && !blank(v) {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return Request{}, fmt.Errorf("%w: %s: %v", ErrInvalidParam, ParamComputeDigests, err)
		}
		req.Config.DisableDigests = !b
	}

	if v, ok := lookup(ParamTimeout); ok && !blank(v) {
		d, err := ParseTimeout(v)
		if err != nil {
			return Request{}, fmt.Errorf("%w: %s: %v", ErrInvalidParam, ParamTimeout, err)
		}
		req.Config.Timeout = d
	}

	return req, nil
}

func ParseValues(v url.Values, defaults ping.Config) (Request, error) {
	return Parse(func(name string) (any, bool) {
		if !v.Has(name) {
			return nil, false
		}
		return v.Get(name), true
	}, defaults)
}

func ParseStruct(s *structpb.Struct, defaults ping.Config) (Request, error) {
	m := s.AsMap()
	return Parse(func(name string) (any, bool) {
		v, ok := m[name]
		return v, ok && v != nil
	}, defaults)
}

// Struct encodes the request with the same keys Parse reads.
func (r Request) Struct() (*structpb.Struct, error) {
	m := map[string]any{
		ParamURL:            r.URL,
		ParamReturnHeaders:  r.Config.ReturnHeaders,
		ParamComputeDigests: !r.Config.DisableDigests,
	}
	if r.Config.ExpectedString != "" {
		m[ParamExpectedString] = r.Config.ExpectedString
	}
	if r.Config.Timeout > 0 {
		m[ParamTimeout] = r.Config.Timeout.String()
	}
	return structpb.NewStruct(m)
}

// ParseTimeout accepts a bare number of seconds or a Go duration string. The
// result must be positive.
func ParseTimeout(v any) (time.Duration, error) {
	var d time.Duration
	switch x := v.(type) {
	case time.Duration:
		d = x
	case string:
		s := strings.TrimSpace(x)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			d = seconds(f)
			break
		}
		parsed, err := cast.ToDurationE(s)
		if err != nil {
			return 0, err
		}
		d = parsed
	default:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return 0, err
		}
		d = seconds(f)
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %v", v)
	}
	return d, nil
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

func blank(v any) bool {
	return strings.TrimSpace(cast.ToString(v)) == ""
}
