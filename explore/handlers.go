package explore

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

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

const Collection = "explore"

// Handler wires the explore editor to the shell: list/detail reads, editor
// sessions, submits and deletes. One session owns one canonical Item.
type Handler struct {
	api      *upstream.Client
	sessions *editor.Store[Item]
}

func NewHandler(api *upstream.Client) *Handler {
	return &Handler{
		api:      api,
		sessions: editor.NewStore[Item](2 * time.Hour),
	}
}

// Close stops the session store's sweeper on shutdown.
func (h *Handler) Close() { h.sessions.Close() }

// List serves the browse view, cache-aside through Redis.
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

type startInput struct {
	ID   string `json:"id"`
	Mode string `json:"mode"`
}

// StartSession opens an editor session: empty entity for create, fetched
// and normalized entity for edit or view.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input startInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	mode := editor.ModeEditing
	if input.Mode == "view" {
		mode = editor.ModeViewing
	}

	item := EmptyItem()
	if input.ID != "" {
		raw, err := h.api.Get(r.Context(), Collection, input.ID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadGateway, err.Error())
			return
		}
		item = Normalize(raw)
	}

	sess := h.sessions.Start(item, input.ID, mode)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"session_id": sess.ID,
		"mode":       sess.Mode(),
		"entity":     viewItem(sess.Entity()),
	})
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"session_id": sess.ID,
		"mode":       sess.Mode(),
		"entity":     viewItem(sess.Entity()),
	})
}

// Edit flips a viewing session into editing mode.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	sess.StartEditing()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"mode": sess.Mode()})
}

// Cancel discards the session; the shell goes back to browsing and
// re-fetches the list.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.sessions.Drop(ps.ByName("sid"))
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

type opInput struct {
	Op     string `json:"op"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Index  int    `json:"index"`
	Image  int    `json:"image"`
	Season int    `json:"season"`
	Icon   int    `json:"icon"`
}

// Apply dispatches one non-file edit operation onto the session's entity.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	var in opInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	err = sess.Update(func(it Item) (Item, error) {
		switch in.Op {
		case "set_field":
			return it.SetField(in.Field, in.Value)
		case "remove_image":
			return it.RemoveImage(in.Image), nil
		case "add_season":
			return it.AddSeason()
		case "remove_season":
			return it.RemoveSeason(in.Season), nil
		case "update_season_field":
			return it.UpdateSeasonField(in.Season, in.Field, in.Value)
		case "add_icon":
			return it.AddIcon(in.Season)
		case "remove_icon":
			return it.RemoveIcon(in.Season, in.Icon)
		case "set_icon_description":
			return it.SetIconDescription(in.Season, in.Icon, in.Value)
		case "add_experience":
			return it.AddExperience(), nil
		case "remove_experience":
			return it.RemoveExperience(in.Index), nil
		case "update_experience_field":
			return it.UpdateExperienceField(in.Index, in.Field, in.Value)
		case "remove_experience_image":
			return it.RemoveExperienceImage(in.Index, in.Image), nil
		default:
			return it, fmt.Errorf("unknown operation %q", in.Op)
		}
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"entity": viewItem(sess.Entity())})
}

// AddImages appends a picked batch to the main image list. All files in
// the batch land together or not at all.
func (h *Handler) AddImages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.addImageBatch(w, r, ps, func(it Item, files []wire.FileAttachment) (Item, error) {
		return it.AddImages(files)
	})
}

// AddExperienceImages appends a picked batch to one experience's gallery.
func (h *Handler) AddExperienceImages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	idx := utils.LooseInt(ps.ByName("idx"))
	h.addImageBatch(w, r, ps, func(it Item, files []wire.FileAttachment) (Item, error) {
		return it.AddExperienceImages(idx, files)
	})
}

// SetIcon replaces one icon slot with an uploaded file.
func (h *Handler) SetIcon(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	file, err := utils.ReadFormFile(r, "icon")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if file == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "No icon file uploaded")
		return
	}
	season := utils.LooseInt(ps.ByName("season"))
	icon := utils.LooseInt(ps.ByName("icon"))
	if err := sess.Update(func(it Item) (Item, error) {
		return it.SetIcon(season, icon, *file)
	}); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"entity": viewItem(sess.Entity())})
}

// Submit serializes the canonical entity and sends the one network call.
// Failure keeps the session (and the admin's edits) alive; success drops
// it and invalidates the cached list.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}

	item, err := sess.BeginSubmit()
	if err != nil {
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}
	defer sess.EndSubmit()

	fs, err := Serialize(item)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if sess.EntityID == "" {
		_, err = h.api.Create(r.Context(), Collection, fs)
	} else {
		_, err = h.api.Patch(r.Context(), Collection, sess.EntityID, fs)
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		return
	}

	action := "update"
	if sess.EntityID == "" {
		action = "create"
	}
	activity.Log(r.Context(), middleware.RequestingUser(r), action, Collection, sess.EntityID)

	h.sessions.Drop(sess.ID)
	rdx.InvalidateList(Collection)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// Delete removes a persisted entity. The confirmed flag is the explicit
// gate the shell's dialog sets; without it nothing is deleted.
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

func (h *Handler) addImageBatch(w http.ResponseWriter, r *http.Request, ps httprouter.Params,
	apply func(Item, []wire.FileAttachment) (Item, error)) {

	sess, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	files, err := utils.ReadFormFiles(r, "images")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(files) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No image files uploaded")
		return
	}
	if err := sess.Update(func(it Item) (Item, error) {
		return apply(it, files)
	}); err != nil {
		log.Printf("explore image batch rejected: %v", err)
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"entity": viewItem(sess.Entity())})
}

// viewItem renders the canonical entity for the shell, with every slot
// resolved to a displayable preview.
func viewItem(it Item) utils.M {
	seasons := make([]utils.M, len(it.Seasons))
	for i, s := range it.Seasons {
		icons := make([]utils.M, len(s.Icons))
		for j, ic := range s.Icons {
			icons[j] = utils.M{
				"preview":     ic.PreviewURI(),
				"description": ic.Description,
				"pending":     ic.IsPending(),
			}
		}
		seasons[i] = utils.M{
			"id":        s.ID,
			"from_date": s.FromDate,
			"to_date":   s.ToDate,
			"header":    s.Header,
			"icons":     icons,
		}
	}

	exps := make([]utils.M, len(it.Experiences))
	for i, e := range it.Experiences {
		exps[i] = utils.M{
			"id":          e.ID,
			"title":       e.Title,
			"description": e.Description,
			"images":      viewSlots(e.Images),
		}
	}

	return utils.M{
		"id":                 it.ID,
		"title":              it.Title,
		"sub_header":         it.SubHeader,
		"description":        it.Description,
		"season_description": it.SeasonDescription,
		"images":             viewSlots(it.Images),
		"seasons":            seasons,
		"experiences":        exps,
	}
}

func viewSlots(slots []imageslot.Slot) []utils.M {
	out := make([]utils.M, len(slots))
	for i, s := range slots {
		out[i] = utils.M{"preview": s.PreviewURI(), "pending": s.IsPending()}
	}
	return out
}

