package activity

import (
	"context"
	"log"
	"net/http"
	"time"

	"tourdesk/db"
	"tourdesk/middleware"
	"tourdesk/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Record is one audit entry: who did what to which entity, through the
// gateway.
type Record struct {
	UserID     string    `json:"user_id" bson:"user_id"`
	Action     string    `json:"action" bson:"action"` // create / update / delete
	EntityType string    `json:"entity_type" bson:"entity_type"`
	EntityID   string    `json:"entity_id" bson:"entity_id"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}

// Log writes one audit record. Auditing is best-effort: a write failure is
// logged, never surfaced to the admin mid-save.
func Log(ctx context.Context, userID, action, entityType, entityID string) {
	rec := Record{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Timestamp:  time.Now(),
	}
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if _, err := db.AuditCollection.InsertOne(cctx, rec); err != nil {
		log.Printf("audit insert failed (%s %s %s): %v", action, entityType, entityID, err)
	}
}

// GetRecent returns the latest 100 audit records, newest first.
func GetRecent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if middleware.RequestingUser(r) == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(100)
	cursor, err := db.AuditCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch audit log")
		return
	}
	defer cursor.Close(ctx)

	records := []Record{}
	if err := cursor.All(ctx, &records); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode audit log")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, records)
}
