package record

import (
	"testing"
	"time"

	"github.com/NordCoder/webping/internal/ping"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestFromResult_OKScenario(t *testing.T) {
	rec := FromResult(ping.Result{
		URL:            "http://example.com",
		ResponseCode:   ptr(200),
		RequestTime:    ptr(12345678 * time.Nanosecond),
		ResponseSize:   ptr(int64(2)),
		ResponseMD5:    ptr("e0aa021e21dddbd6d8cecec71e9cf564"),
		ResponseSHA224: ptr("0cd2a4d0d9ac2e3e0a0e6c9c9da64c3a63a8fd6c0c7f2fe9c8b6e1a6"),
	})

	require.Equal(t, 200, rec[KeyResponseCode])
	require.Equal(t, 12.35, rec[KeyTotalTime])
	require.Equal(t, false, rec[KeyTimedOut])
	require.Equal(t, "http://example.com", rec[KeyURL])
	require.Equal(t, int64(2), rec[KeyContentSize])
	require.Contains(t, rec, KeyContentMD5)
	require.Contains(t, rec, KeyContentSHA224)
	require.NotContains(t, rec, KeyHasExpectedString)
}

func TestFromResult_Unreachable(t *testing.T) {
	rec := FromResult(ping.Result{
		URL:         "http://10.255.255.1",
		RequestTime: ptr(3 * time.Millisecond),
		Outcome:     ping.OutcomeConnectionFailed,
	})
	require.Equal(t, Record{
		KeyURL:       "http://10.255.255.1",
		KeyTimedOut:  false,
		KeyTotalTime: 3.0,
	}, rec)
}

func TestFromResult_ExpectedStringToken(t *testing.T) {
	yes := FromResult(ping.Result{HasExpectedString: ptr(true)})
	no := FromResult(ping.Result{HasExpectedString: ptr(false)})
	require.Equal(t, "true", yes[KeyHasExpectedString])
	require.Equal(t, "false", no[KeyHasExpectedString])
}

func TestFromResult_Headers(t *testing.T) {
	rec := FromResult(ping.Result{
		ResponseCode: ptr(200),
		Headers:      map[string]string{"Content-Type": "text/plain", "X-Trace": "abc"},
	})
	require.Equal(t, "text/plain", rec["header_Content-Type"])
	require.Equal(t, "abc", rec["header_X-Trace"])
	require.Equal(t, map[string]string{"Content-Type": "text/plain", "X-Trace": "abc"}, rec.Headers())

	none := FromResult(ping.Result{ResponseCode: ptr(200)})
	require.Nil(t, none.Headers())
}

func TestMillis_Rounding(t *testing.T) {
	require.Equal(t, 0.0, Millis(0))
	require.Equal(t, 1.0, Millis(time.Millisecond))
	require.Equal(t, 1.23, Millis(1234*time.Microsecond))
	require.Equal(t, 1.24, Millis(1235*time.Microsecond+time.Nanosecond))
	require.Equal(t, 1500.0, Millis(1500*time.Millisecond))
}

func TestKeys_Order(t *testing.T) {
	rec := Record{
		"header_b":      "2",
		KeyTimedOut:     false,
		KeyURL:          "u",
		"header_a":      "1",
		KeyResponseCode: 200,
	}
	require.Equal(t, []string{KeyURL, KeyResponseCode, KeyTimedOut, "header_a", "header_b"}, rec.Keys())
}

func TestStruct_RoundTripKeepsIntegers(t *testing.T) {
	rec := Record{
		KeyURL:          "http://x",
		KeyResponseCode: 404,
		KeyContentSize:  int64(10),
		KeyTotalTime:    1.5,
		KeyTimedOut:     false,
	}
	s, err := rec.Struct()
	require.NoError(t, err)

	back := FromStruct(s)
	require.Equal(t, 404, back[KeyResponseCode])
	require.Equal(t, int64(10), back[KeyContentSize])
	require.Equal(t, 1.5, back[KeyTotalTime])
	require.Equal(t, false, back[KeyTimedOut])
}
