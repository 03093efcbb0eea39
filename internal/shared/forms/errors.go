package forms

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Các message hiển thị trên form
const (
	MsgRequired      = "This field is required."
	MsgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
)

// FieldErrors gom lỗi validation theo tên field của form
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Get trả về lỗi của một field, nil nếu field hợp lệ
func (e FieldErrors) Get(field string) []string {
	return e[field]
}

func (e FieldErrors) Has(field string) bool {
	return len(e[field]) > 0
}

func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// Fields trả về tên các field có lỗi, sort để output ổn định
func (e FieldErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FromValidation chuyển validation.Errors của ozzo thành FieldErrors.
// Lỗi không phải validation (InternalError) được trả về nguyên vẹn.
func FromValidation(err error) (FieldErrors, error) {
	out := FieldErrors{}
	if err == nil {
		return out, nil
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	for field, fe := range verrs {
		if fe == nil {
			continue
		}
		out.Add(field, fe.Error())
	}
	return out, nil
}

// ValidationError là lỗi mà service trả về khi input không hợp lệ,
// handler dùng errors.As để render lại form với Fields
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields.Fields(), ", ")
}
