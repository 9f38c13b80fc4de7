package dmbuild

import (
	"context"
	"regexp"
	"strings"
)

var versionToken = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)+`)

// VersionProbe is the outcome of asking the Python runtime for its
// version banner. A failed probe is not fatal: ResolvePythonVersion
// falls back through the override chain instead of surfacing the error.
// This is the one tolerated failure in an otherwise fail-fast pipeline.
type VersionProbe struct {
	Token string // first dotted numeric token from the banner
	Raw   string // trimmed banner output, kept for diagnostics
	Err   error  // non-nil when the runtime could not be executed
}

// Ok reports whether the probe produced a usable version token.
func (p VersionProbe) Ok() bool {
	return p.Err == nil && p.Token != ""
}

// ProbeVersion runs the Python runtime with --version and extracts the
// first run of digits and dots from its banner. Older CPython releases
// print the banner on stderr, so combined output is parsed.
func ProbeVersion(ctx context.Context, r *Runner, python string) VersionProbe {
	out, err := r.Output(ctx, "", python, "--version")

	probe := VersionProbe{Raw: strings.TrimSpace(out), Err: err}
	if err != nil {
		return probe
	}
	probe.Token = versionToken.FindString(out)
	return probe
}

// ResolvePythonVersion applies the version precedence chain: an explicit
// override wins, then the probed banner token, then DefaultPythonVersion.
func ResolvePythonVersion(override string, probe VersionProbe) string {
	switch {
	case override != "":
		return override
	case probe.Ok():
		return probe.Token
	default:
		return DefaultPythonVersion
	}
}
