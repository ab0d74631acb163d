package ping

import (
	"net/http"
	"strings"
)

// Assemble turns what the fetcher saw into a Result. Fields whose
// preconditions do not hold stay nil.
func Assemble(t Target, cfg Config, ex Exchange) Result {
	r := Result{
		URL:      t.String(),
		TimedOut: ex.Outcome == OutcomeTimedOut,
		Outcome:  ex.Outcome,
		Err:      ex.Err,
	}

	if ex.Dispatched {
		elapsed := ex.Elapsed
		if elapsed < 0 {
			elapsed = 0
		}
		r.RequestTime = &elapsed
	}

	if ex.Outcome != OutcomeCompleted && ex.Outcome != OutcomeStreamFailed {
		return r
	}

	code := ex.StatusCode
	r.ResponseCode = &code
	if cfg.ReturnHeaders {
		r.Headers = flattenHeader(ex.Header)
	}

	if ex.Body == nil {
		return r
	}
	size := ex.Body.Size
	r.ResponseSize = &size

	if !cfg.DisableDigests && ex.Body.Complete && ex.Body.MD5 != "" {
		md5, sha224 := ex.Body.MD5, ex.Body.SHA224
		r.ResponseMD5 = &md5
		r.ResponseSHA224 = &sha224
	}

	if cfg.ExpectedString != "" {
		found := ex.Body.Matched != nil && *ex.Body.Matched
		r.HasExpectedString = &found
	}
	return r
}

func flattenHeader(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		out[http.CanonicalHeaderKey(k)] = strings.Join(vs, ", ")
	}
	return out
}
