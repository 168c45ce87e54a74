// Package buses is the fleet screen. Bus forms carry a gallery instead of
// a single image, capped by count rather than per-file size.
package buses

import (
	"encoding/json"
	"fmt"
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
	"github.com/sourcegraph/conc/iter"
)

const Collection = "buses"

// MaxBusImages caps the gallery on the bus form.
const MaxBusImages = 10

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

// Save proxies a bus create/update. All picked gallery files are read as
// one batch and attached as bus_image_N (0-based), mirroring the editors'
// all-or-nothing rule.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := r.ParseMultipartForm(utils.MaxFormMemory); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	name := r.FormValue("name")
	if name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	fs := &wire.FieldSet{}
	fs.AddValue("name", name)
	fs.AddValue("registration_number", r.FormValue("registration_number"))
	fs.AddValue("capacity", r.FormValue("capacity"))
	fs.AddValue("description", r.FormValue("description"))

	files, err := utils.ReadFormFiles(r, "images")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(files) > MaxBusImages {
		utils.RespondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("at most %d images per bus", MaxBusImages))
		return
	}
	slots, err := iter.MapErr(files, func(f *wire.FileAttachment) (imageslot.Slot, error) {
		// Gallery forms trade the per-file size cap for the count cap.
		return imageslot.FromFileLimit(f.Filename, f.ContentType, f.Data, 0)
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	for i, slot := range slots {
		fs.AddFile(fmt.Sprintf("bus_image_%d", i), slot.File)
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
