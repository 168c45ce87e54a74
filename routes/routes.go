package routes

import (
	"tourdesk/activity"
	"tourdesk/ads"
	"tourdesk/auth"
	"tourdesk/buses"
	"tourdesk/explore"
	"tourdesk/export"
	"tourdesk/middleware"
	"tourdesk/ratelim"
	"tourdesk/tours"

	"github.com/julienschmidt/httprouter"
)

// Handlers groups the per-screen handlers main constructs once.
type Handlers struct {
	Explore *explore.Handler
	Tours   *tours.Handler
	Ads     *ads.Handler
	Buses   *buses.Handler
	Export  *export.Handler
}

func RoutesWrapper(router *httprouter.Router, rl *ratelim.RateLimiter, h *Handlers) {
	AddAuthRoutes(router, rl)
	AddExploreRoutes(router, rl, h.Explore)
	AddTourRoutes(router, rl, h.Tours)
	AddAdsRoutes(router, rl, h.Ads)
	AddBusRoutes(router, rl, h.Buses)
	AddExportRoutes(router, rl, h.Export)
	AddActivityRoutes(router, rl)
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/login", rl.Limit(auth.Login))
}

func AddExploreRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *explore.Handler) {
	router.GET("/api/explore", middleware.Authenticate(h.List))
	router.DELETE("/api/explore/items/:id", middleware.Authenticate(h.Delete))

	router.POST("/api/explore/sessions", middleware.Authenticate(h.StartSession))
	router.GET("/api/explore/sessions/:sid", middleware.Authenticate(h.GetSession))
	router.POST("/api/explore/sessions/:sid/edit", middleware.Authenticate(h.Edit))
	router.POST("/api/explore/sessions/:sid/ops", middleware.Authenticate(h.Apply))
	router.POST("/api/explore/sessions/:sid/images", middleware.Authenticate(h.AddImages))
	router.POST("/api/explore/sessions/:sid/experiences/:idx/images", middleware.Authenticate(h.AddExperienceImages))
	router.POST("/api/explore/sessions/:sid/seasons/:season/icons/:icon", middleware.Authenticate(h.SetIcon))
	router.POST("/api/explore/sessions/:sid/submit", rl.Limit(middleware.Authenticate(h.Submit)))
	router.DELETE("/api/explore/sessions/:sid", middleware.Authenticate(h.Cancel))
}

func AddTourRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *tours.Handler) {
	router.GET("/api/packages", middleware.Authenticate(h.ListPackages))
	router.DELETE("/api/days/items/:id", middleware.Authenticate(h.Delete))

	router.POST("/api/days/sessions", middleware.Authenticate(h.StartSession))
	router.GET("/api/days/sessions/:sid", middleware.Authenticate(h.GetSession))
	router.POST("/api/days/sessions/:sid/edit", middleware.Authenticate(h.Edit))
	router.POST("/api/days/sessions/:sid/ops", middleware.Authenticate(h.Apply))
	router.POST("/api/days/sessions/:sid/records/:kind/:idx/images", middleware.Authenticate(h.AddImages))
	router.POST("/api/days/sessions/:sid/submit", rl.Limit(middleware.Authenticate(h.Submit)))
	router.DELETE("/api/days/sessions/:sid", middleware.Authenticate(h.Cancel))
}

func AddAdsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *ads.Handler) {
	router.GET("/api/ads", middleware.Authenticate(h.List))
	router.POST("/api/ads", rl.Limit(middleware.Authenticate(h.Save)))
	router.POST("/api/ads/:id", rl.Limit(middleware.Authenticate(h.Save)))
	router.DELETE("/api/ads/:id", middleware.Authenticate(h.Delete))
}

func AddBusRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *buses.Handler) {
	router.GET("/api/buses", middleware.Authenticate(h.List))
	router.POST("/api/buses", rl.Limit(middleware.Authenticate(h.Save)))
	router.POST("/api/buses/:id", rl.Limit(middleware.Authenticate(h.Save)))
	router.DELETE("/api/buses/:id", middleware.Authenticate(h.Delete))
}

func AddExportRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *export.Handler) {
	router.GET("/api/export/days/:id/pdf", rl.Limit(middleware.Authenticate(h.DayPlanPDF)))
}

func AddActivityRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/activity", rl.Limit(middleware.Authenticate(activity.GetRecent)))
}
