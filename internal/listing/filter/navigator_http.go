// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package filter

import (
	"net/http"

	"github.com/taibuivan/staynest/pkg/query"
)

// HTTPNavigator adapts one request/response pair to [Navigator].
// The current query is the request's own query string; navigation is a
// 303 See Other redirect to Path with the new state encoded.
type HTTPNavigator struct {
	Writer  http.ResponseWriter
	Request *http.Request
	// Path is the page navigated to, usually the browse home.
	Path string
}

// CurrentQuery parses the request's query string.
func (navigator *HTTPNavigator) CurrentQuery() query.State {
	return query.Parse(navigator.Request.URL.RawQuery)
}

// NavigateTo writes the redirect.
func (navigator *HTTPNavigator) NavigateTo(state query.State) {
	http.Redirect(navigator.Writer, navigator.Request, query.URL(navigator.Path, state), http.StatusSeeOther)
}
