package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Group là một chủ đề mà post có thể thuộc về
type Group struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
}

func (g *Group) String() string {
	return g.Title
}

// CreateGroupRequest dùng bởi lệnh `manage creategroup`
type CreateGroupRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (r CreateGroupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required"), validation.Length(1, 200)),
		validation.Field(&r.Slug,
			validation.Required.Error("slug is required"),
			validation.Length(1, 200),
			validation.Match(slugPattern).Error("slug may contain only letters, numbers, underscores or hyphens"),
		),
	)
}
