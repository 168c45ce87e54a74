// Package ads is the advertisements screen: a plain single-entity form with
// one image, proxied straight through to the booking backend.
package ads

import (
	"encoding/json"
	"net/http"

	"tourdesk/activity"
	"tourdesk/editor"
	"tourdesk/imageslot"
	"tourdesk/middleware"
	"tourdesk/rdx"
	"tourdesk/upstream"
	"tourdesk/utils"
	"tourdesk/wire"

	"github.com/julienschmidt/httprouter"
)

const Collection = "ads"

type Handler struct {
	api *upstream.Client
}

func NewHandler(api *upstream.Client) *Handler { return &Handler{api: api} }

func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached := rdx.CachedList(Collection); cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}
	items, err := h.api.List(r.Context(), Collection)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to encode list")
		return
	}
	rdx.CacheList(Collection, data)
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// Save handles both create (no id) and edit (id path param). The form is a
// fixed set of scalars plus one optional image, validated the same way the
// editors validate single images.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := r.ParseMultipartForm(utils.MaxFormMemory); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	fs := &wire.FieldSet{}
	fs.AddValue("title", title)
	fs.AddValue("description", r.FormValue("description"))
	fs.AddValue("link", r.FormValue("link"))
	fs.AddValue("category", r.FormValue("category"))

	file, err := utils.ReadFormFile(r, "image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if file != nil {
		slot, err := imageslot.FromFile(file.Filename, file.ContentType, file.Data)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		fs.AddFile("image", slot.File)
	}

	id := ps.ByName("id")
	if id == "" {
		_, err = h.api.Create(r.Context(), Collection, fs)
	} else {
		_, err = h.api.Patch(r.Context(), Collection, id, fs)
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		return
	}

	action := "update"
	if id == "" {
		action = "create"
	}
	activity.Log(r.Context(), middleware.RequestingUser(r), action, Collection, id)
	rdx.InvalidateList(Collection)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := editor.ConfirmDelete(r.URL.Query().Get("confirmed") == "true"); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	id := ps.ByName("id")
	if err := h.api.Delete(r.Context(), Collection, id); err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		return
	}
	activity.Log(r.Context(), middleware.RequestingUser(r), "delete", Collection, id)
	rdx.InvalidateList(Collection)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
