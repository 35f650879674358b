// Package images contains the image URL resolution policy used when serving
// heroes, and the offline audit/repair tooling for the image catalog.
package images

import "strings"

// ImageBasePath is the URL prefix the static image catalog is mounted on.
const ImageBasePath = "/images/"

// PlaceholderPath is the URL path of the generic placeholder image.
const PlaceholderPath = "/images/placeholder-hero.png"

// SizeDirs are the size-variant subdirectories of the catalog, in resolution
// priority order: large, medium, small, extra-small.
var SizeDirs = []string{"lg", "md", "sm", "xs"}

// Resolver turns a hero's stored image value into the URL a client should
// request. It never returns an empty string and never checks file existence;
// a wrong guess is handled by the client's image error fallback.
type Resolver struct {
	// Origin is the public server origin, e.g. "http://localhost:5000".
	Origin string
}

// URL resolves a stored image value. Policy, in priority order:
//
//  1. empty value              -> placeholder URL
//  2. rooted under /images/    -> origin + value, unchanged
//  3. scheme-prefixed URL      -> passed through unchanged
//  4. bare filename            -> first size-variant candidate (lg)
//  5. any other relative path  -> origin + value
func (r Resolver) URL(image string) string {
	image = strings.TrimSpace(image)
	switch {
	case image == "":
		return r.Origin + PlaceholderPath
	case strings.HasPrefix(image, ImageBasePath):
		return r.Origin + image
	case strings.HasPrefix(image, "http://"), strings.HasPrefix(image, "https://"):
		return image
	case !strings.HasPrefix(image, "/"):
		return r.Origin + ImageBasePath + SizeDirs[0] + "/" + image
	default:
		return r.Origin + image
	}
}

// NormalizeName reduces a hero name or image filename to its matching key:
// lower-cased with every non-alphanumeric character removed. Lossy on purpose;
// only the offline repair tool relies on it.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
