package model

import (
	"time"

	groupModel "yatube/internal/domains/group/model"
	userModel "yatube/internal/domains/user/model"
)

// displayLength là số ký tự đầu của Text dùng làm String()
const displayLength = 15

type Post struct {
	ID      int64             `json:"id" db:"id"`
	Text    string            `json:"text" db:"text"`
	PubDate time.Time         `json:"pub_date" db:"pub_date"`
	Author  *userModel.User   `json:"author"`
	Group   *groupModel.Group `json:"group,omitempty"` // nil = không thuộc group nào
}

// String trả về 15 ký tự (rune) đầu tiên của Text
func (p *Post) String() string {
	r := []rune(p.Text)
	if len(r) > displayLength {
		r = r[:displayLength]
	}
	return string(r)
}

// IsAuthor kiểm tra user có phải tác giả của post
func (p *Post) IsAuthor(u *userModel.User) bool {
	return u != nil && p.Author != nil && p.Author.ID == u.ID
}

// GroupID trả về id của group hoặc nil
func (p *Post) GroupID() *int64 {
	if p.Group == nil {
		return nil
	}
	id := p.Group.ID
	return &id
}
