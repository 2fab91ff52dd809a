package adminapi

import (
	"net/http"
	"strings"

	"emb-site/internal/api/apiutil"
	"emb-site/internal/app/http/middleware"
	"emb-site/internal/domain/settings"

	"github.com/gin-gonic/gin"
)

// GET /admin/settings/general
func (h *Handler) GetGeneral(c *gin.Context) {
	g, err := h.settings.General(c.Request.Context())
	if err != nil {
		h.fail(c, err, "could not load settings")
		return
	}
	apiutil.OK(c, http.StatusOK, g)
}

// PUT /admin/settings/general
func (h *Handler) SaveGeneral(c *gin.Context) {
	var in settings.General
	if err := c.ShouldBindJSON(&in); err != nil {
		apiutil.Fail(c, http.StatusBadRequest, "invalid settings")
		return
	}
	if err := h.settings.SaveGeneral(c.Request.Context(), in); err != nil {
		h.fail(c, err, "could not save settings")
		return
	}
	apiutil.OK(c, http.StatusOK, in)
}

// GET /admin/settings/admins
func (h *Handler) GetAdmins(c *gin.Context) {
	a, err := h.settings.Admins(c.Request.Context())
	if err != nil {
		h.fail(c, err, "could not load admins")
		return
	}
	apiutil.OK(c, http.StatusOK, a)
}

// PUT /admin/settings/admins {emails}
//
// The caller must stay on the list; otherwise the next request would lock
// them out.
func (h *Handler) SaveAdmins(c *gin.Context) {
	var in settings.Admins
	if err := c.ShouldBindJSON(&in); err != nil {
		apiutil.Fail(c, http.StatusBadRequest, "invalid admin list")
		return
	}
	self := strings.ToLower(middleware.AdminEmail(c))
	kept := false
	for _, e := range in.Emails {
		if strings.ToLower(strings.TrimSpace(e)) == self {
			kept = true
			break
		}
	}
	if !kept {
		apiutil.Fail(c, http.StatusBadRequest, "you cannot remove yourself from the admin list")
		return
	}

	if err := h.settings.SaveAdmins(c.Request.Context(), in.Emails); err != nil {
		h.fail(c, err, "could not save admins")
		return
	}
	h.GetAdmins(c)
}

// GET /admin/lists/:name
func (h *Handler) GetList(c *gin.Context) {
	list, err := h.settings.List(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.fail(c, err, "could not load list")
		return
	}
	apiutil.OK(c, http.StatusOK, settings.List{List: list})
}

// PUT /admin/lists/:name {list} replaces the whole list as sent.
func (h *Handler) ReplaceList(c *gin.Context) {
	var in settings.List
	if err := c.ShouldBindJSON(&in); err != nil {
		apiutil.Fail(c, http.StatusBadRequest, "invalid list")
		return
	}
	if err := h.settings.ReplaceList(c.Request.Context(), c.Param("name"), in.List); err != nil {
		h.fail(c, err, "could not save list")
		return
	}
	if in.List == nil {
		in.List = []string{}
	}
	apiutil.OK(c, http.StatusOK, in)
}
