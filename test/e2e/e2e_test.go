//go:build e2e

package e2e

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/NordCoder/webping/internal/services/ping-api/probe"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type cfg struct {
	APIBase  string // http://localhost:8080
	GRPCAddr string // localhost:9090
	// Target is fetched by ping-api, so it must resolve from inside its network.
	Target string
}

func loadCfg() cfg {
	return cfg{
		APIBase:  getenv("E2E_API_BASE", "http://localhost:8080"),
		GRPCAddr: getenv("E2E_GRPC_ADDR", "localhost:9090"),
		Target:   getenv("E2E_TARGET_URL", "http://http-echo:80/"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func waitReady(t *testing.T, c cfg) {
	t.Helper()
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(c.APIBase + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(time.Second)
	}
	t.Fatalf("ping-api not ready at %s", c.APIBase)
}

func getPing(t *testing.T, c cfg, q url.Values) (int, string) {
	t.Helper()
	resp, err := http.Get(c.APIBase + "/v1/ping?" + q.Encode())
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func Test_HTTPPing_Target(t *testing.T) {
	c := loadCfg()
	waitReady(t, c)

	code, body := getPing(t, c, url.Values{
		"url":            {c.Target},
		"return_headers": {"true"},
		"timeout":        {"10"},
	})
	require.Equal(t, http.StatusOK, code, body)
	require.Equal(t, c.Target, gjson.Get(body, "url").String())
	require.Equal(t, int64(200), gjson.Get(body, "response_code").Int())
	require.False(t, gjson.Get(body, "timed_out").Bool())
	require.Len(t, gjson.Get(body, "content_md5").String(), 32)
	require.Len(t, gjson.Get(body, "content_sha224").String(), 56)
	require.False(t, gjson.Get(body, "has_expected_string").Exists())
}

func Test_HTTPPing_ConnectionFailed(t *testing.T) {
	c := loadCfg()
	waitReady(t, c)

	code, body := getPing(t, c, url.Values{"url": {"http://127.0.0.1:1/"}, "timeout": {"5s"}})
	require.Equal(t, http.StatusOK, code, body)
	require.False(t, gjson.Get(body, "timed_out").Bool())
	require.False(t, gjson.Get(body, "response_code").Exists())
	require.True(t, gjson.Get(body, "total_time").Exists())
}

func Test_HTTPPing_BadRequest(t *testing.T) {
	c := loadCfg()
	waitReady(t, c)

	code, body := getPing(t, c, url.Values{"url": {"mailto:someone@example.com"}})
	require.Equal(t, http.StatusBadRequest, code)
	require.NotEmpty(t, gjson.Get(body, "error").String())
}

func Test_GRPCPing(t *testing.T) {
	c := loadCfg()
	waitReady(t, c)

	conn, err := grpc.NewClient(c.GRPCAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()
	client := probe.NewPingServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	in, err := structpb.NewStruct(map[string]any{"url": c.Target, "expected_string": "definitely-not-there"})
	require.NoError(t, err)
	out, err := client.Ping(ctx, in)
	require.NoError(t, err)
	require.Equal(t, 200.0, out.Fields["response_code"].GetNumberValue())
	require.Equal(t, "false", out.Fields["has_expected_string"].GetStringValue())

	in, err = structpb.NewStruct(map[string]any{"url": "no-scheme"})
	require.NoError(t, err)
	_, err = client.Ping(ctx, in)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}
