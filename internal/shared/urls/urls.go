// Package urls builds the site's paths in one place so handlers,
// redirects and templates agree on them.
package urls

import (
	"net/url"
	"strconv"
	"strings"
)

func Index() string { return "/" }

func GroupList(slug string) string {
	return "/group/" + url.PathEscape(slug) + "/"
}

func Profile(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func PostDetail(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10) + "/"
}

func PostEdit(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10) + "/edit/"
}

func PostCreate() string { return "/create/" }

func Signup() string { return "/auth/signup/" }

func Logout() string { return "/auth/logout/" }

// LoginRedirect trả về loginURL?next=<path>. Dấu "/" trong next được giữ
// nguyên: /auth/login/?next=/create/
func LoginRedirect(loginURL, next string) string {
	if next == "" {
		return loginURL
	}
	escaped := strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
	sep := "?"
	if strings.Contains(loginURL, "?") {
		sep = "&"
	}
	return loginURL + sep + "next=" + escaped
}

// SafeNext chỉ chấp nhận path nội bộ, chặn open redirect (//evil.com, http://...)
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return Index()
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return Index()
	}
	return next
}

// WithPage thêm ?page=N vào path
func WithPage(path string, page int) string {
	return path + "?page=" + strconv.Itoa(page)
}
