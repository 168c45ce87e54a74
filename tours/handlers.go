package tours

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tourdesk/activity"
	"tourdesk/editor"
	"tourdesk/imageslot"
	"tourdesk/middleware"
	"tourdesk/rdx"
	"tourdesk/upstream"
	"tourdesk/utils"

	"github.com/julienschmidt/httprouter"
)

// Collections on the booking backend.
const (
	PackagesCollection = "packages"
	DaysCollection     = "days"
)

// Handler drives the day plan editor and the package list screens.
type Handler struct {
	api      *upstream.Client
	sessions *editor.Store[Day]
}

func NewHandler(api *upstream.Client) *Handler {
	return &Handler{
		api:      api,
		sessions: editor.NewStore[Day](2 * time.Hour),
	}
}

// Close stops the session store's sweeper on shutdown.
func (h *Handler) Close() { h.sessions.Close() }

// ListPackages serves the package browse view, cache-aside through Redis.
func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached := rdx.CachedList(PackagesCollection); cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}
	pkgs, err := h.api.List(r.Context(), PackagesCollection)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		return
	}
	data, err := json.Marshal(pkgs)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to encode list")
		return
	}
	rdx.CacheList(PackagesCollection, data)
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

type startInput struct {
	ID        string `json:"id"`
	PackageID string `json:"package_id"`
	Mode      string `json:"mode"`
}

// StartSession opens a day plan session: blank day for create (bound to
// its package), normalized backend state for edit or view.
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

	day := EmptyDay()
	day.PackageID = input.PackageID
	if input.ID != "" {
		raw, err := h.api.Get(r.Context(), DaysCollection, input.ID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadGateway, err.Error())
			return
		}
		day = Normalize(raw)
	}

	sess := h.sessions.Start(day, input.ID, mode)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"session_id": sess.ID,
		"mode":       sess.Mode(),
		"entity":     viewDay(sess.Entity()),
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
		"entity":     viewDay(sess.Entity()),
	})
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	sess.StartEditing()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"mode": sess.Mode()})
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.sessions.Drop(ps.ByName("sid"))
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

type opInput struct {
	Op        string `json:"op"`
	Field     string `json:"field"`
	Value     string `json:"value"`
	Index     int    `json:"index"`
	Image     int    `json:"image"`
	Room      int    `json:"room"`
	RoomKind  string `json:"room_kind"`
	Breakfast bool   `json:"breakfast"`
}

// Apply dispatches one non-file edit operation.
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

	err = sess.Update(func(d Day) (Day, error) {
		switch in.Op {
		case "set_field":
			return d.SetField(in.Field, in.Value)
		case "add_place":
			return d.AddPlace(), nil
		case "remove_place":
			return d.RemovePlace(in.Index), nil
		case "update_place_field":
			return d.UpdatePlaceField(in.Index, in.Field, in.Value)
		case "remove_place_image":
			return d.RemovePlaceImage(in.Index, in.Image), nil
		case "add_stay":
			return d.AddStay(), nil
		case "remove_stay":
			return d.RemoveStay(in.Index), nil
		case "update_stay_field":
			return d.UpdateStayField(in.Index, in.Field, in.Value)
		case "remove_stay_image":
			return d.RemoveStayImage(in.Index, in.Image), nil
		case "add_room_type":
			return d.AddRoomType(in.Index)
		case "remove_room_type":
			return d.RemoveRoomType(in.Index, in.Room)
		case "update_room_type":
			return d.UpdateRoomType(in.Index, in.Room, RoomKind(in.RoomKind), in.Breakfast)
		case "add_meal":
			return d.AddMeal(), nil
		case "remove_meal":
			return d.RemoveMeal(in.Index), nil
		case "update_meal_field":
			return d.UpdateMealField(in.Index, in.Field, in.Value)
		case "remove_meal_image":
			return d.RemoveMealImage(in.Index, in.Image), nil
		case "add_activity":
			return d.AddActivity(), nil
		case "remove_activity":
			return d.RemoveActivity(in.Index), nil
		case "update_activity_field":
			return d.UpdateActivityField(in.Index, in.Field, in.Value)
		case "remove_activity_image":
			return d.RemoveActivityImage(in.Index, in.Image), nil
		default:
			return d, fmt.Errorf("unknown operation %q", in.Op)
		}
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"entity": viewDay(sess.Entity())})
}

// AddImages appends a picked batch to one sub-record's gallery. The kind
// path segment selects which list.
func (h *Handler) AddImages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	kind := ps.ByName("kind")
	idx := utils.LooseInt(ps.ByName("idx"))
	err = sess.Update(func(d Day) (Day, error) {
		switch kind {
		case "places":
			return d.AddPlaceImages(idx, files)
		case "stays":
			return d.AddStayImages(idx, files)
		case "meals":
			return d.AddMealImages(idx, files)
		case "activities":
			return d.AddActivityImages(idx, files)
		default:
			return d, fmt.Errorf("unknown sub-record kind %q", kind)
		}
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"entity": viewDay(sess.Entity())})
}

// Submit sends the day plan to the backend once; double submits are
// refused while the first is in flight.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}

	day, err := sess.BeginSubmit()
	if err != nil {
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}
	defer sess.EndSubmit()

	fs, err := Serialize(day)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if sess.EntityID == "" {
		_, err = h.api.Create(r.Context(), DaysCollection, fs)
	} else {
		_, err = h.api.Patch(r.Context(), DaysCollection, sess.EntityID, fs)
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		return
	}

	action := "update"
	if sess.EntityID == "" {
		action = "create"
	}
	activity.Log(r.Context(), middleware.RequestingUser(r), action, DaysCollection, sess.EntityID)

	h.sessions.Drop(sess.ID)
	rdx.InvalidateList(PackagesCollection)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// Delete removes a persisted day, gated on explicit confirmation.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := editor.ConfirmDelete(r.URL.Query().Get("confirmed") == "true"); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	id := ps.ByName("id")
	if err := h.api.Delete(r.Context(), DaysCollection, id); err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		return
	}
	activity.Log(r.Context(), middleware.RequestingUser(r), "delete", DaysCollection, id)
	rdx.InvalidateList(PackagesCollection)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

func viewDay(d Day) utils.M {
	places := make([]utils.M, len(d.Places))
	for i, p := range d.Places {
		places[i] = utils.M{
			"id": p.ID, "name": p.Name, "description": p.Description,
			"images": viewSlots(p.Images),
		}
	}
	stays := make([]utils.M, len(d.Stays))
	for i, s := range d.Stays {
		rooms := make([]utils.M, len(s.RoomTypes))
		for j, rt := range s.RoomTypes {
			rooms[j] = utils.M{"type": rt.Type, "breakfast_included": rt.BreakfastIncluded}
		}
		stays[i] = utils.M{
			"id": s.ID, "name": s.Name, "description": s.Description,
			"location": s.Location, "room_types": rooms,
			"images": viewSlots(s.Images),
		}
	}
	meals := make([]utils.M, len(d.Meals))
	for i, m := range d.Meals {
		meals[i] = utils.M{
			"id": m.ID, "type": m.Type, "description": m.Description,
			"restaurant_name": m.RestaurantName, "time": m.Time,
			"location": m.Location, "included": m.Included,
			"images": viewSlots(m.Images),
		}
	}
	acts := make([]utils.M, len(d.Activities))
	for i, a := range d.Activities {
		acts[i] = utils.M{
			"id": a.ID, "title": a.Title, "description": a.Description,
			"images": viewSlots(a.Images),
		}
	}
	return utils.M{
		"id":          d.ID,
		"package_id":  d.PackageID,
		"day_number":  d.Number,
		"title":       d.Title,
		"description": d.Description,
		"places":      places,
		"stays":       stays,
		"meals":       meals,
		"activities":  acts,
	}
}

func viewSlots(slots []imageslot.Slot) []utils.M {
	out := make([]utils.M, len(slots))
	for i, s := range slots {
		out[i] = utils.M{"preview": s.PreviewURI(), "pending": s.IsPending()}
	}
	return out
}
