package handler

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/user/homepage/internal/logging"
	"github.com/user/homepage/internal/model"
	"github.com/user/homepage/internal/utils"
)

const contactSuccess = "Thanks for reaching out! I'll get back to you soon."

// 表单字段错误提示
var contactFieldErrors = map[string]string{
	"Name":    "Please enter your name.",
	"Email":   "Please enter a valid email address.",
	"Content": "Message must be between 5 and 5000 characters.",
	"PageURL": "Invalid page.",
}

// ContactPage 联系页
func (h *Handler) ContactPage(c *gin.Context) {
	data := gin.H{
		"Title":   h.title("Contact"),
		"Enabled": h.Feedback != nil,
		"Form":    model.Feedback{PageURL: c.Query("from")},
	}

	if _, ok := c.Get(sessions.DefaultKey); ok {
		session := sessions.Default(c)
		if flashes := session.Flashes(); len(flashes) > 0 {
			data["Flash"] = flashes[0]
			_ = session.Save()
		}
	}

	c.HTML(http.StatusOK, "contact.html", h.RenderData(c, data))
}

// SubmitContact 提交留言，成功后重定向（PRG）
func (h *Handler) SubmitContact(c *gin.Context) {
	form := model.Feedback{
		Name:    strings.TrimSpace(c.PostForm("name")),
		Email:   strings.TrimSpace(c.PostForm("email")),
		Content: strings.TrimSpace(c.PostForm("message")),
		PageURL: strings.TrimSpace(c.PostForm("page_url")),
		IPHash:  utils.HashIP(c.ClientIP()),
	}

	render := func(code int, extra gin.H) {
		data := gin.H{
			"Title":   h.title("Contact"),
			"Enabled": h.Feedback != nil,
			"Form":    form,
		}
		for k, v := range extra {
			data[k] = v
		}
		c.HTML(code, "contact.html", h.RenderData(c, data))
	}

	// 蜜罐字段，机器人填写后静默丢弃
	if c.PostForm("website") != "" {
		c.Redirect(http.StatusSeeOther, "/contact")
		return
	}

	if h.Feedback == nil {
		render(http.StatusServiceUnavailable, gin.H{"Error": "The contact form is currently unavailable."})
		return
	}

	if err := validate.Struct(form); err != nil {
		render(http.StatusBadRequest, gin.H{"Errors": fieldErrors(err)})
		return
	}

	if err := h.Feedback.Create(c.Request.Context(), &form); err != nil {
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("保存留言失败")
		render(http.StatusInternalServerError, gin.H{"Error": "Something went wrong, please try again."})
		return
	}

	logging.Ctx(c.Request.Context()).Info().Int("feedback_id", form.ID).Msg("收到新留言")

	if _, ok := c.Get(sessions.DefaultKey); ok {
		session := sessions.Default(c)
		session.AddFlash(contactSuccess)
		_ = session.Save()
	}
	c.Redirect(http.StatusSeeOther, "/contact")
}

// fieldErrors 校验错误转为字段提示
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["Form"] = "Invalid input."
		return out
	}
	for _, fe := range verrs {
		msg, known := contactFieldErrors[fe.Field()]
		if !known {
			msg = "Invalid value."
		}
		out[fe.Field()] = msg
	}
	return out
}
