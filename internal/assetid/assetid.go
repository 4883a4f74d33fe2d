// Package assetid converts between public asset URLs and blob store keys.
//
// A public URL has the shape
//
//	<base>/<bucket>/upload/v<version>/<folder>/<name><ext>
//
// and its asset id is <folder>/<name>.
package assetid

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hszk-dev/vidshare/internal/domain/apperr"
)

const uploadMarker = "/upload/"

var (
	versionPrefix = regexp.MustCompile(`^v\d+/`)
	extension     = regexp.MustCompile(`\.[^/.]+$`)
)

// ErrUnresolvable is returned when a URL does not have the expected shape.
var ErrUnresolvable = apperr.New(apperr.AssetIDResolutionFailed, "could not derive asset id from URL")

// FromURL derives the asset id from a public URL. Only the first /upload/
// marker counts; an optional version segment and the extension of the last
// path segment are stripped.
func FromURL(url string) (string, error) {
	_, rest, found := strings.Cut(url, uploadMarker)
	if !found {
		return "", fmt.Errorf("%w: %q", ErrUnresolvable, url)
	}
	rest = versionPrefix.ReplaceAllString(rest, "")
	rest = extension.ReplaceAllString(rest, "")
	if rest == "" || strings.HasSuffix(rest, "/") {
		return "", fmt.Errorf("%w: %q", ErrUnresolvable, url)
	}
	return rest, nil
}

// BuildURL is the inverse of FromURL for a given version and extension.
func BuildURL(baseURL, bucket string, version int64, assetID, ext string) string {
	return fmt.Sprintf("%s/%s%sv%d/%s%s",
		strings.TrimRight(baseURL, "/"), bucket, uploadMarker, version, assetID, ext)
}
