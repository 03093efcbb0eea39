package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	groupModel "yatube/internal/domains/group/model"
	"yatube/internal/domains/post/model"
	"yatube/internal/domains/post/repository"
	"yatube/internal/domains/post/service"
	userModel "yatube/internal/domains/user/model"
	"yatube/internal/shared/forms"
	"yatube/internal/shared/middleware"
	"yatube/internal/shared/response"
	"yatube/internal/shared/urls"
)

// GroupReader là phần của group service mà post handler cần
type GroupReader interface {
	GetBySlug(ctx context.Context, slug string) (*groupModel.Group, error)
	List(ctx context.Context) ([]groupModel.Group, error)
}

// UserReader tìm author cho trang profile
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*userModel.User, error)
}

// PostHandler xử lý các trang HTML của blog
type PostHandler struct {
	posts  service.ServiceInterface
	groups GroupReader
	users  UserReader
}

func NewPostHandler(posts service.ServiceInterface, groups GroupReader, users UserReader) *PostHandler {
	return &PostHandler{
		posts:  posts,
		groups: groups,
		users:  users,
	}
}

// ========================================
// PUBLIC PAGES
// ========================================

// Index xử lý GET / - toàn bộ post, mới nhất trước
func (h *PostHandler) Index(c *gin.Context) {
	page, err := h.posts.List(c.Request.Context(), repository.Filter{}, c.Query("page"))
	if err != nil {
		response.ServerError(c, err)
		return
	}

	response.Render(c, http.StatusOK, "posts/index.html", gin.H{
		"page_obj": page,
	})
}

// GroupPosts xử lý GET /group/:slug/
func (h *PostHandler) GroupPosts(c *gin.Context) {
	ctx := c.Request.Context()

	group, err := h.groups.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		response.Error(c, groupModel.ToHTTPStatus(err), err)
		return
	}

	page, err := h.posts.List(ctx, repository.Filter{GroupID: &group.ID}, c.Query("page"))
	if err != nil {
		response.ServerError(c, err)
		return
	}

	response.Render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"group":    group,
		"page_obj": page,
	})
}

// Profile xử lý GET /profile/:username/
func (h *PostHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()

	author, err := h.users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		response.Error(c, userModel.ToHTTPStatus(err), err)
		return
	}

	page, err := h.posts.List(ctx, repository.Filter{AuthorID: &author.ID}, c.Query("page"))
	if err != nil {
		response.ServerError(c, err)
		return
	}

	response.Render(c, http.StatusOK, "posts/profile.html", gin.H{
		"author":   author,
		"page_obj": page,
		// Count của page là tổng số post của author, không cần query thêm
		"posts_count": page.Count,
	})
}

// PostDetail xử lý GET /posts/:post_id/
func (h *PostHandler) PostDetail(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	count, err := h.posts.CountByAuthor(c.Request.Context(), post.Author)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	response.Render(c, http.StatusOK, "posts/post_detail.html", gin.H{
		"post":        post,
		"posts_count": count,
	})
}

// ========================================
// AUTHENTICATED PAGES
// ========================================

// PostCreate xử lý GET,POST /create/ (sau LoginRequired)
func (h *PostHandler) PostCreate(c *gin.Context) {
	ctx := c.Request.Context()
	me := middleware.CurrentUser(c)

	choices, err := h.groups.List(ctx)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	if c.Request.Method != http.MethodPost {
		h.renderForm(c, model.FormState{Choices: choices}, nil)
		return
	}

	data := bindPostForm(c)
	result := data.Validate(choices)
	if !result.Valid() {
		h.renderForm(c, model.FormState{Data: data, Errors: result.Errors(), Choices: choices}, nil)
		return
	}

	// Author luôn là user đang đăng nhập, form không có field author
	_, err = h.posts.Create(ctx, me, result.Fields())
	if err != nil {
		if errors.Is(err, model.ErrInvalidGroup) {
			h.renderForm(c, invalidGroupState(data, choices), nil)
			return
		}
		response.ServerError(c, err)
		return
	}

	c.Redirect(http.StatusFound, urls.Profile(me.Username))
}

// PostEdit xử lý GET,POST /posts/:post_id/edit/ (sau LoginRequired).
// User không phải tác giả được redirect về profile của chính họ.
func (h *PostHandler) PostEdit(c *gin.Context) {
	ctx := c.Request.Context()
	me := middleware.CurrentUser(c)

	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	if !post.IsAuthor(me) {
		c.Redirect(http.StatusFound, urls.Profile(me.Username))
		return
	}

	choices, err := h.groups.List(ctx)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	if c.Request.Method != http.MethodPost {
		h.renderForm(c, model.FormState{Data: model.FormFromPost(post), Choices: choices}, post)
		return
	}

	data := bindPostForm(c)
	result := data.Validate(choices)
	if !result.Valid() {
		h.renderForm(c, model.FormState{Data: data, Errors: result.Errors(), Choices: choices}, post)
		return
	}

	_, err = h.posts.Update(ctx, me, post.ID, result.Fields())
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, urls.PostDetail(post.ID))
	case errors.Is(err, model.ErrNotAuthor):
		c.Redirect(http.StatusFound, urls.Profile(me.Username))
	case errors.Is(err, model.ErrInvalidGroup):
		h.renderForm(c, invalidGroupState(data, choices), post)
	default:
		response.Error(c, model.ToHTTPStatus(err), err)
	}
}

// ========================================
// HELPERS
// ========================================

// loadPost parse :post_id và load post; id không phải số cũng là 404
func (h *PostHandler) loadPost(c *gin.Context) (*model.Post, bool) {
	id, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil || id < 1 {
		response.NotFound(c)
		return nil, false
	}

	post, err := h.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, model.ToHTTPStatus(err), err)
		return nil, false
	}
	return post, true
}

func bindPostForm(c *gin.Context) model.PostForm {
	var data model.PostForm
	// Lỗi bind chỉ xảy ra với body hỏng; coi như form rỗng để validate báo lỗi
	_ = c.ShouldBind(&data)
	return data
}

// invalidGroupState: group bị xoá giữa lúc validate và lúc lưu
func invalidGroupState(data model.PostForm, choices []groupModel.Group) model.FormState {
	fe := forms.FieldErrors{}
	fe.Add("group", forms.MsgInvalidChoice)
	return model.FormState{Data: data, Errors: fe, Choices: choices}
}

func (h *PostHandler) renderForm(c *gin.Context, state model.FormState, post *model.Post) {
	if state.Errors == nil {
		state.Errors = forms.FieldErrors{}
	}
	data := gin.H{
		"form":    state,
		"is_edit": post != nil,
	}
	if post != nil {
		data["post"] = post
	}
	response.Render(c, http.StatusOK, "posts/new_post.html", data)
}
