// Package nuget queries the NuGet search service for published package versions.
package nuget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/conn-castle/gittools-runner/internal/messages"
)

// SearchURL is the public NuGet search endpoint.
const SearchURL = "https://azuresearch-usnc.nuget.org/query"

var searchURL = SearchURL
var httpClient = &http.Client{Timeout: 30 * time.Second}

type searchResponse struct {
	Data []struct {
		Versions []struct {
			Version string `json:"version"`
		} `json:"versions"`
	} `json:"data"`
}

// Versions returns every version the feed lists for tool's top-ranked
// package, in feed order. When prerelease is false the feed omits
// prerelease versions. The query is attempted once.
func Versions(ctx context.Context, tool string, prerelease bool) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	query := url.Values{}
	query.Set("q", strings.ToLower(tool))
	query.Set("prerelease", strconv.FormatBool(prerelease))
	query.Set("semVerLevel", "2.0.0")
	query.Set("take", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf(messages.NugetCreateRequestErrFmt, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "gittools-runner")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf(messages.NugetQueryErrFmt, tool, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf(messages.NugetQueryStatusFmt, tool, resp.Status)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf(messages.NugetDecodeErrFmt, tool, err)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf(messages.NugetQueryErrFmt, tool, errors.New(messages.NugetNoPackage))
	}
	versions := make([]string, 0, len(payload.Data[0].Versions))
	for _, v := range payload.Data[0].Versions {
		if v.Version != "" {
			versions = append(versions, v.Version)
		}
	}
	return versions, nil
}
