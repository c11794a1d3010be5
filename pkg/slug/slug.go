package slug

import (
	"strings"
)

// Placeholder is used when a name sanitizes to nothing
const Placeholder = "unknown"

const (
	routeInfix  = "-에서-"
	routeSuffix = "-가는-시외버스-시간표"
	hubSuffix   = "-터미널-시외버스-시간표"
	htmlExt     = ".html"
)

var forbidden = strings.NewReplacer(
	"/", "-", "\\", "-", ":", "-", "*", "-", "?", "-",
	"\"", "-", "<", "-", ">", "-", "|", "-",
	"\n", "-", "\r", "-", "\t", "-",
)

// Sanitize makes a terminal name safe to use as a path component.
// The result never contains a forbidden character or "--" and is never blank.
func Sanitize(name string) string {
	s := forbidden.Replace(name)

	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")

	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// RoutePage is the extension-less page name for an origin/destination pair,
// used for both the output file and its URL.
func RoutePage(origin, destination string) string {
	return origin + routeInfix + Sanitize(destination) + routeSuffix
}

// RoutePageFile is RoutePage plus the .html extension
func RoutePageFile(origin, destination string) string {
	return RoutePage(origin, destination) + htmlExt
}

// HubPage is the extension-less page name of a terminal index
func HubPage(terminal string) string {
	return Sanitize(terminal) + hubSuffix
}

// HubPageFile is HubPage plus the .html extension
func HubPageFile(terminal string) string {
	return HubPage(terminal) + htmlExt
}

// IsHubPage reports whether a file name belongs to a terminal index page
func IsHubPage(name string) bool {
	return strings.HasSuffix(strings.TrimSuffix(name, htmlExt), hubSuffix)
}

// RouteText turns a page file name back into readable route text:
// "인천-에서-신갈-가는-시외버스-시간표.html" -> "인천 → 신갈"
func RouteText(name string) string {
	base := strings.TrimSuffix(name, htmlExt)

	if strings.HasSuffix(base, routeSuffix) {
		base = strings.TrimSuffix(base, routeSuffix)
		if origin, dest, ok := strings.Cut(base, routeInfix); ok {
			return origin + " → " + dest
		}
		return base
	}
	if strings.HasSuffix(base, hubSuffix) {
		return strings.TrimSuffix(base, hubSuffix) + " 터미널"
	}
	return strings.ReplaceAll(base, "-", " ")
}

// Escape percent-encodes a page name for use in an absolute URL.
// Only ASCII letters, digits and "-._~" are left as is.
func Escape(name string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
