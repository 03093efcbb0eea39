// Package web chứa HTML templates và static files, embed vào binary.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"yatube/internal/shared/urls"
)

//go:embed templates/*/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// DateLayout là format ngày hiển thị trên post
const DateLayout = "02 January 2006"

// Funcs là các helper dùng trong template; URL đều build qua package urls
func Funcs(loginURL string) template.FuncMap {
	return template.FuncMap{
		"indexURL":    urls.Index,
		"groupURL":    urls.GroupList,
		"profileURL":  urls.Profile,
		"postURL":     urls.PostDetail,
		"postEditURL": urls.PostEdit,
		"createURL":   urls.PostCreate,
		"signupURL":   urls.Signup,
		"logoutURL":   urls.Logout,
		"loginURL":    func() string { return loginURL },
		"pageURL":     urls.WithPage,
		"date":        func(t time.Time) string { return t.Format(DateLayout) },
		"year":        func() int { return time.Now().Year() },
		"linebreaksbr": func(s string) template.HTML {
			escaped := template.HTMLEscapeString(strings.ReplaceAll(s, "\r\n", "\n"))
			return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
		},
	}
}

// Templates parse toàn bộ template; tên template là path tương đối,
// ví dụ "posts/index.html", để handler gọi c.HTML với đúng tên đó.
func Templates(loginURL string) (*template.Template, error) {
	return template.New("yatube").Funcs(Funcs(loginURL)).ParseFS(templateFS, "templates/*/*.html")
}

// StaticFS trả về thư mục static cho router.StaticFS("/static", ...)
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("web: embedded static directory missing: " + err.Error())
	}
	return http.FS(sub)
}
