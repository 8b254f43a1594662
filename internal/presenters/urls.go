// Package presenters maps stored entities to client-facing representations.
// Each entity has an explicit mapper function; handlers compose them.
package presenters

import "strings"

// URLResolver turns stored media references into absolute URLs. References
// that are already absolute pass through unchanged; everything else is
// treated as a path under the media base.
type URLResolver struct {
	MediaBaseURL string
}

// Resolve maps a stored reference to an absolute URL. nil and empty
// references resolve to nil.
func (r URLResolver) Resolve(ref *string) *string {
	if ref == nil || *ref == "" {
		return nil
	}
	v := *ref
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return &v
	}
	resolved := strings.TrimRight(r.MediaBaseURL, "/") + "/" + strings.TrimLeft(v, "/")
	return &resolved
}
