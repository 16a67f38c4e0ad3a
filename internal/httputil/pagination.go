package httputil

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"docmanagement/internal/domain/models"
)

// Pagination headers
const (
	TotalCountHeader = "X-Total-Count"
	LinkHeader       = "Link"
)

// SetPaginationHeaders writes X-Total-Count and an RFC 5988 Link header whose
// targets are reqURL with its page and size parameters replaced.
func SetPaginationHeaders[T any](w http.ResponseWriter, reqURL *url.URL, page *models.Page[T]) {
	w.Header().Set(TotalCountHeader, strconv.FormatInt(page.Total, 10))

	link := func(p int, rel string) string {
		u := *reqURL
		q := u.Query()
		q.Set("page", strconv.Itoa(p))
		q.Set("size", strconv.Itoa(page.Size))
		u.RawQuery = q.Encode()
		return fmt.Sprintf("<%s>; rel=%q", u.RequestURI(), rel)
	}

	parts := make([]string, 0, 4)
	if page.Links.HasNext {
		parts = append(parts, link(page.Links.Next, "next"))
	}
	if page.Links.HasPrev {
		parts = append(parts, link(page.Links.Prev, "prev"))
	}
	parts = append(parts, link(page.Links.Last, "last"), link(page.Links.First, "first"))

	w.Header().Set(LinkHeader, strings.Join(parts, ","))
}

var linkPart = regexp.MustCompile(`<([^>]*)>\s*;\s*rel="?([a-z]+)"?`)

// ParseLinkHeader reads the page numbers out of a Link header. Unknown
// relations and targets without a page parameter are skipped.
func ParseLinkHeader(header string) (models.Links, error) {
	var links models.Links
	if strings.TrimSpace(header) == "" {
		return links, nil
	}

	matches := linkPart.FindAllStringSubmatch(header, -1)
	if matches == nil {
		return links, fmt.Errorf("malformed link header %q", header)
	}

	for _, m := range matches {
		target, err := url.Parse(m[1])
		if err != nil {
			return links, fmt.Errorf("malformed link target %q: %w", m[1], err)
		}
		raw := target.Query().Get("page")
		if raw == "" {
			continue
		}
		p, err := strconv.Atoi(raw)
		if err != nil {
			return links, fmt.Errorf("malformed page %q in link: %w", raw, err)
		}

		switch m[2] {
		case "first":
			links.First = p
		case "prev":
			links.Prev, links.HasPrev = p, true
		case "next":
			links.Next, links.HasNext = p, true
		case "last":
			links.Last = p
		}
	}
	return links, nil
}
