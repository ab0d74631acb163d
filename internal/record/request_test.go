package record

import (
	"net/url"
	"testing"
	"time"

	"github.com/NordCoder/webping/internal/ping"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestParseValues(t *testing.T) {
	defaults := ping.Config{Timeout: 30 * time.Second}

	cases := []struct {
		name  string
		query string
		want  Request
	}{
		{
			name:  "url only",
			query: "url=https://example.com",
			want:  Request{URL: "https://example.com", Config: defaults},
		},
		{
			name:  "all params",
			query: "url=https://example.com&expected_string=OK&return_headers=true&timeout=5",
			want: Request{URL: "https://example.com", Config: ping.Config{
				ExpectedString: "OK", ReturnHeaders: true, Timeout: 5 * time.Second,
			}},
		},
		{
			name:  "duration string and digests off",
			query: "url=http://a.test&timeout=250ms&compute_digests=0&return_headers=1",
			want: Request{URL: "http://a.test", Config: ping.Config{
				ReturnHeaders: true, Timeout: 250 * time.Millisecond, DisableDigests: true,
			}},
		},
		{
			name:  "blank optional values keep defaults",
			query: "url=http://a.test&timeout=&return_headers=",
			want:  Request{URL: "http://a.test", Config: defaults},
		},
		{
			name:  "fractional seconds",
			query: "url=http://a.test&timeout=1.5",
			want:  Request{URL: "http://a.test", Config: ping.Config{Timeout: 1500 * time.Millisecond}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := url.ParseQuery(tc.query)
			require.NoError(t, err)
			got, err := ParseValues(v, defaults)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseValues_Errors(t *testing.T) {
	cases := []struct {
		query string
		want  error
	}{
		{"", ping.ErrInvalidURL},
		{"url=%20", ping.ErrInvalidURL},
		{"url=http://a&return_headers=maybe", ErrInvalidParam},
		{"url=http://a&compute_digests=perhaps", ErrInvalidParam},
		{"url=http://a&timeout=soon", ErrInvalidParam},
		{"url=http://a&timeout=-1", ErrInvalidParam},
		{"url=http://a&timeout=0", ErrInvalidParam},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			v, err := url.ParseQuery(tc.query)
			require.NoError(t, err)
			_, err = ParseValues(v, ping.Config{})
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseStruct(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{
		"url":             "https://example.com/status",
		"expected_string": "healthy",
		"return_headers":  true,
		"timeout":         2.0,
	})
	require.NoError(t, err)

	got, err := ParseStruct(s, ping.Config{})
	require.NoError(t, err)
	require.Equal(t, Request{URL: "https://example.com/status", Config: ping.Config{
		ExpectedString: "healthy", ReturnHeaders: true, Timeout: 2 * time.Second,
	}}, got)
}

func TestRequest_StructRoundTrip(t *testing.T) {
	in := Request{URL: "http://a.test/x", Config: ping.Config{
		ExpectedString: "ok", ReturnHeaders: true, Timeout: 1500 * time.Millisecond, DisableDigests: true,
	}}
	s, err := in.Struct()
	require.NoError(t, err)

	out, err := ParseStruct(s, ping.Config{})
	require.NoError(t, err)
	require.Equal(t, in, out)
}
