package repository

import (
	"net/url"
	"strconv"
	"strings"
)

// resourcePath joins a collection path with escaped id segments
func resourcePath(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// pageQuery adds page and limit when they are set
func pageQuery(q url.Values, page, limit int) url.Values {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// productIDsBody is the payload of the banner association endpoints
type productIDsBody struct {
	ProductIDs []string `json:"productIds"`
}
