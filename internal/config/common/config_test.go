package common_config

import (
	"testing"

	"github.com/NordCoder/webping/internal/ping"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func defaults(t *testing.T) Probe {
	t.Helper()
	v := viper.New()
	SetDefaults(v, "test")
	var p Probe
	require.NoError(t, v.UnmarshalKey("probe", &p))
	return p
}

func TestSetDefaults_Probe(t *testing.T) {
	p := defaults(t)
	require.NoError(t, p.Validate())
	require.Equal(t, ping.Config{Timeout: ping.DefaultTimeout}, p.AsPingConfig())

	cc := p.AsClientConfig(nil)
	require.False(t, cc.InsecureSkipVerify)
	require.False(t, cc.FollowRedirects)
	require.Equal(t, 10, cc.MaxRedirects)
	require.Zero(t, cc.DialTimeout)
	require.Equal(t, ping.DefaultUserAgent, p.UserAgent)
}

func TestProbe_Validate(t *testing.T) {
	p := defaults(t)
	p.Timeout = 0
	require.Error(t, p.Validate())

	p = defaults(t)
	p.MaxRedirects = -1
	require.Error(t, p.Validate())
}

func TestProbe_DigestsOff(t *testing.T) {
	p := defaults(t)
	p.ComputeDigests = false
	p.VerifyTLS = false
	require.True(t, p.AsPingConfig().DisableDigests)
	require.True(t, p.AsClientConfig(nil).InsecureSkipVerify)
}

func TestLog_AsLoggerConfig(t *testing.T) {
	l := Log{Level: "debug", File: "/tmp/x.log"}
	lc := l.AsLoggerConfig(App{Name: "ping-api", Env: "prod", Version: "1.2.3"})
	require.Equal(t, "webping/ping-api", lc.App)
	require.Equal(t, "prod", lc.Env)
	require.Equal(t, "1.2.3", lc.Ver)
	require.Equal(t, "/tmp/x.log", lc.File)
}
