package probe

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/NordCoder/webping/internal/ping"
	"github.com/NordCoder/webping/internal/record"
	"google.golang.org/protobuf/types/known/structpb"
)

// Settings is the part of the service that a config reload replaces.
type Settings struct {
	Pinger   *ping.Pinger
	Defaults ping.Config
	// MaxTimeout caps the timeout a caller may ask for. Zero means no cap.
	MaxTimeout time.Duration
}

type Usecase struct {
	cur atomic.Pointer[Settings]
}

func NewUsecase(s Settings) *Usecase {
	uc := &Usecase{}
	uc.Swap(s)
	return uc
}

// Swap installs new settings. Probes already running keep the old pinger.
func (u *Usecase) Swap(s Settings) {
	if s.Pinger == nil {
		s.Pinger = ping.New()
	}
	u.cur.Store(&s)
}

func (u *Usecase) Settings() Settings { return *u.cur.Load() }

func (u *Usecase) PingQuery(ctx context.Context, q url.Values) (record.Record, error) {
	s := u.cur.Load()
	req, err := record.ParseValues(q, s.Defaults)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, req)
}

func (u *Usecase) PingStruct(ctx context.Context, in *structpb.Struct) (record.Record, error) {
	s := u.cur.Load()
	req, err := record.ParseStruct(in, s.Defaults)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, req)
}

func (s *Settings) run(ctx context.Context, req record.Request) (record.Record, error) {
	if s.MaxTimeout > 0 && req.Config.Timeout > s.MaxTimeout {
		return nil, fmt.Errorf("%w: %s %s exceeds the maximum of %s",
			record.ErrInvalidParam, record.ParamTimeout, req.Config.Timeout, s.MaxTimeout)
	}
	res, err := s.Pinger.Ping(ctx, req.URL, req.Config)
	if err != nil {
		return nil, err
	}
	return record.FromResult(res), nil
}

// IsInvalidInput reports errors caused by the caller's parameters.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ping.ErrInvalidURL) || errors.Is(err, record.ErrInvalidParam)
}
