// parse.go decodes raw tool output into typed results: the exposed-port
// response and the kill operation's "nothing to do" sentinel. The
// version banner parser lives in version.go next to the resolver.
package compose

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mmr-tortoise/suitedock/internal/model"
)

const (
	// wildcardHost is the all-interfaces bind address the tool reports
	// for ports published without an explicit host address.
	wildcardHost = "0.0.0.0"

	// loopbackHost is what callers get instead of the wildcard address,
	// since connecting to 0.0.0.0 is not portable.
	loopbackHost = "127.0.0.1"

	// notExposedSentinel is the ":0" response newer tool versions print
	// for an unpublished port. Older versions print an empty string.
	notExposedSentinel = ":0"
)

// portNumberRe validates the port half of a host:port response.
var portNumberRe = regexp.MustCompile(`^\d+$`)

// ParseExposedPort decodes a single-line host:port response from the
// port lookup operation, splitting on the last colon so IPv6 bracketed
// hosts keep their internal colons.
//
// Three outcomes:
//   - a genuine host:port pair → the parsed ExposedService
//   - empty string or ":0" → model.ErrPortNotExposed (two tool-version
//     conventions for the same condition; both are always recognized)
//   - anything else → model.ErrUnexpectedResponse
//
// The host is returned as reported; wildcard substitution is the
// facade's job because it depends on where the adapter itself runs.
func ParseExposedPort(text string) (model.ExposedService, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == notExposedSentinel {
		return model.ExposedService{}, model.ErrPortNotExposed
	}

	idx := strings.LastIndex(text, ":")
	if idx < 0 {
		return model.ExposedService{}, fmt.Errorf("%w: %q", model.ErrUnexpectedResponse, text)
	}

	host, port := text[:idx], text[idx+1:]
	if host == "" || !portNumberRe.MatchString(port) {
		return model.ExposedService{}, fmt.Errorf("%w: %q", model.ErrUnexpectedResponse, text)
	}

	return model.ExposedService{Host: host, Port: port}, nil
}

// killSentinels are the "nothing to do" phrasings of the two tool major
// versions. Matched case-insensitively because the capitalization also
// differs between versions.
var killSentinels = []string{
	"no containers to kill",
	"no container to kill",
}

// IsKillNoOp reports whether kill output indicates that no container was
// actually killed. The process exits 0 in that case, but the caller's
// intent (forcibly stop something) was not met, so the facade escalates
// it to a failure.
func IsKillNoOp(output string) bool {
	lower := strings.ToLower(output)
	for _, s := range killSentinels {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
