// Package resolve turns a version specifier into a concrete package version.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/conn-castle/gittools-runner/internal/messages"
)

// FeedFunc lists the published versions of tool.
type FeedFunc func(ctx context.Context, tool string, prerelease bool) ([]string, error)

// ResolutionError reports a specifier that no published version satisfies,
// or a feed that could not be queried.
type ResolutionError struct {
	Tool string
	Spec string
	Err  error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(messages.ResolveNoMatchCauseFmt, e.Tool, e.Spec, e.Err)
	}
	return fmt.Sprintf(messages.ResolveNoMatchFmt, e.Tool, e.Spec)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Clean normalizes spec when it is an exact version ("=v1.2.3" becomes
// "1.2.3"). Anything else is returned unchanged apart from surrounding space.
func Clean(spec string) string {
	trimmed := strings.TrimSpace(spec)
	candidate := strings.TrimLeft(trimmed, "=v")
	v, err := semver.StrictNewVersion(candidate)
	if err != nil {
		return trimmed
	}
	return v.String()
}

// IsExact reports whether spec names exactly one version.
func IsExact(spec string) bool {
	_, err := semver.StrictNewVersion(Clean(spec))
	return err == nil
}

// Resolve returns the version of tool that spec selects. An exact spec is
// returned as-is without consulting feed.
func Resolve(ctx context.Context, feed FeedFunc, tool string, spec string, includePrerelease bool) (string, error) {
	cleaned := Clean(spec)
	if IsExact(cleaned) {
		return cleaned, nil
	}

	versions, err := feed(ctx, tool, includePrerelease)
	if err != nil {
		return "", &ResolutionError{Tool: tool, Spec: spec, Err: err}
	}
	match, ok, err := MaxSatisfying(versions, cleaned, includePrerelease)
	if err != nil {
		return "", &ResolutionError{Tool: tool, Spec: spec, Err: err}
	}
	if !ok {
		return "", &ResolutionError{Tool: tool, Spec: spec}
	}
	return match, nil
}

// MaxSatisfying returns the highest version in versions that satisfies spec,
// in its original form. Prerelease versions are eligible only when
// includePrerelease is set. Unparseable entries are skipped.
func MaxSatisfying(versions []string, spec string, includePrerelease bool) (string, bool, error) {
	constraints, err := semver.NewConstraint(spec)
	if err != nil {
		return "", false, fmt.Errorf(messages.ResolveInvalidRangeFmt, spec, err)
	}
	constraints.IncludePrerelease = includePrerelease

	var best *semver.Version
	for _, raw := range versions {
		v, err := semver.NewVersion(raw)
		if err != nil {
			continue
		}
		if v.Prerelease() != "" && !includePrerelease {
			continue
		}
		if !constraints.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}
	if best == nil {
		return "", false, nil
	}
	return best.Original(), true, nil
}
