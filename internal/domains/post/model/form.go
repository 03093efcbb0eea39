package model

import (
	"errors"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	groupModel "yatube/internal/domains/group/model"
	"yatube/internal/shared/forms"
)

// PostForm là dữ liệu thô submit từ form tạo/sửa post.
// Group là id dạng chuỗi, "" nghĩa là không chọn group.
// Form không có field author: author luôn là user đang đăng nhập.
type PostForm struct {
	Text  string `form:"text" json:"text"`
	Group string `form:"group" json:"group"`
}

// PostFields là dữ liệu đã validate, sẵn sàng để lưu
type PostFields struct {
	Text    string
	GroupID *int64
}

// FormResult là kết quả của Validate: Valid với PostFields,
// hoặc Invalid với lỗi theo field
type FormResult struct {
	fields *PostFields
	errors forms.FieldErrors
}

func (r FormResult) Valid() bool {
	return r.fields != nil
}

// Fields chỉ có nghĩa khi Valid() == true
func (r FormResult) Fields() PostFields {
	if r.fields == nil {
		return PostFields{}
	}
	return *r.fields
}

func (r FormResult) Errors() forms.FieldErrors {
	if r.errors == nil {
		return forms.FieldErrors{}
	}
	return r.errors
}

// FormFromPost điền form với giá trị hiện tại của post (GET trang edit)
func FormFromPost(p *Post) PostForm {
	f := PostForm{Text: p.Text}
	if p.Group != nil {
		f.Group = strconv.FormatInt(p.Group.ID, 10)
	}
	return f
}

var errInvalidChoice = errors.New(forms.MsgInvalidChoice)

// Validate là pure function: không I/O, choices là danh sách group hiện có.
//   - text: bắt buộc, không được chỉ có khoảng trắng
//   - group: tùy chọn; nếu có phải là id của một group trong choices
func (f PostForm) Validate(choices []groupModel.Group) FormResult {
	text := strings.TrimSpace(f.Text)
	rawGroup := strings.TrimSpace(f.Group)

	var groupID *int64
	checkGroup := validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return errInvalidChoice
		}
		for _, g := range choices {
			if g.ID == id {
				groupID = &id
				return nil
			}
		}
		return errInvalidChoice
	})

	input := PostForm{Text: text, Group: rawGroup}
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Text, validation.Required.Error(forms.MsgRequired)),
		validation.Field(&input.Group, checkGroup),
	)

	fe, convErr := forms.FromValidation(err)
	if convErr != nil {
		fe = forms.FieldErrors{}
		fe.Add("__all__", convErr.Error())
	}
	if !fe.Empty() {
		return FormResult{errors: fe}
	}

	return FormResult{fields: &PostFields{Text: text, GroupID: groupID}}
}

// FormState là context "form" cho template new_post.html.
// Data giữ nguyên giá trị user đã nhập khi form không hợp lệ.
type FormState struct {
	Data    PostForm
	Errors  forms.FieldErrors
	Choices []groupModel.Group
}

// Selected dùng trong template để đánh dấu <option selected>
func (s FormState) Selected(id int64) bool {
	return strings.TrimSpace(s.Data.Group) == strconv.FormatInt(id, 10)
}
