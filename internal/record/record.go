// Package record translates between invocation parameters, ping results and
// the flat output record emitted by the CLI, the API and the worker.
package record

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/NordCoder/webping/internal/ping"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	KeyResponseCode      = "response_code"
	KeyTotalTime         = "total_time"
	KeyTimedOut          = "timed_out"
	KeyURL               = "url"
	KeyContentMD5        = "content_md5"
	KeyContentSHA224     = "content_sha224"
	KeyContentSize       = "content_size"
	KeyHasExpectedString = "has_expected_string"

	HeaderPrefix = "header_"
)

var fixedOrder = []string{
	KeyURL,
	KeyResponseCode,
	KeyTotalTime,
	KeyTimedOut,
	KeyContentSize,
	KeyContentMD5,
	KeyContentSHA224,
	KeyHasExpectedString,
}

// Record is one output row. Keys whose value does not apply are absent.
type Record map[string]any

// FromResult renders r. total_time is milliseconds rounded to two decimals.
func FromResult(r ping.Result) Record {
	rec := Record{
		KeyURL:      r.URL,
		KeyTimedOut: r.TimedOut,
	}
	if r.ResponseCode != nil {
		rec[KeyResponseCode] = *r.ResponseCode
	}
	if r.RequestTime != nil {
		rec[KeyTotalTime] = Millis(*r.RequestTime)
	}
	if r.ResponseMD5 != nil {
		rec[KeyContentMD5] = *r.ResponseMD5
	}
	if r.ResponseSHA224 != nil {
		rec[KeyContentSHA224] = *r.ResponseSHA224
	}
	if r.ResponseSize != nil {
		rec[KeyContentSize] = *r.ResponseSize
	}
	if r.HasExpectedString != nil {
		rec[KeyHasExpectedString] = strconv.FormatBool(*r.HasExpectedString)
	}
	for name, v := range r.Headers {
		rec[HeaderPrefix+name] = v
	}
	return rec
}

func Millis(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	return math.Round(ms*100) / 100
}

// Keys lists the well-known keys first, then headers alphabetically.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	seen := make(map[string]struct{}, len(fixedOrder))
	for _, k := range fixedOrder {
		if _, ok := r[k]; ok {
			keys = append(keys, k)
		}
		seen[k] = struct{}{}
	}
	var rest []string
	for k := range r {
		if _, ok := seen[k]; !ok {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// Headers returns the captured headers without their prefix.
func (r Record) Headers() map[string]string {
	var out map[string]string
	for k, v := range r {
		if !strings.HasPrefix(k, HeaderPrefix) {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		s, _ := v.(string)
		out[strings.TrimPrefix(k, HeaderPrefix)] = s
	}
	return out
}

func (r Record) Struct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any(r))
}

// FromStruct is the inverse of Struct. Numbers come back as float64, so
// response_code and content_size are converted back to integers.
func FromStruct(s *structpb.Struct) Record {
	rec := Record(s.AsMap())
	for _, k := range []string{KeyResponseCode, KeyContentSize} {
		if f, ok := rec[k].(float64); ok {
			if k == KeyResponseCode {
				rec[k] = int(f)
			} else {
				rec[k] = int64(f)
			}
		}
	}
	return rec
}
