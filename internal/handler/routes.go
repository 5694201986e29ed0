package handler

import (
	"net/http"

	"github.com/msomdec/ocean-watch/internal/content"
	"github.com/msomdec/ocean-watch/internal/domain"
	"github.com/msomdec/ocean-watch/internal/service"
	"github.com/msomdec/ocean-watch/internal/view"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	members *service.MemberService,
	flash *service.FlashSigner,
	catalog *content.Catalog,
	views *view.Views,
	db domain.Database,
	metrics *Metrics,
	cookieSecure bool,
) {
	pageHandler := NewPageHandler(catalog, views)
	joinHandler := NewJoinHandler(members, flash, views, metrics, cookieSecure)
	membersHandler := NewMembersHandler(members, views)
	dataHandler := NewDataHandler(catalog.Datasets())

	// Operational endpoints.
	mux.HandleFunc("GET /healthz", HandleHealthz(db))
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(view.Assets())))
	mux.HandleFunc("GET /assets/data/sample-data.json", dataHandler.HandleSampleData)
	mux.HandleFunc("GET /assets/data/geojson.json", dataHandler.HandleHotspots)

	// Static pages. Every page path is also a legacy target.
	for _, p := range catalog.Pages() {
		h := pageHandler.HandlePage(p.Slug)
		pattern := "GET " + p.Path
		if p.Path == "/" {
			pattern = "GET /{$}"
		}
		mux.HandleFunc(pattern, h)
		pageHandler.addTarget(p.Path, h)
	}

	// Signup.
	mux.HandleFunc("GET /join", joinHandler.HandleJoinForm)
	mux.HandleFunc("POST /join", joinHandler.HandleJoin)
	mux.HandleFunc("GET /join/success", joinHandler.HandleJoinSuccess)
	pageHandler.addTarget("/join", http.HandlerFunc(joinHandler.HandleJoinForm))
	pageHandler.addTarget("/join/success", http.HandlerFunc(joinHandler.HandleJoinSuccess))

	// Members.
	mux.HandleFunc("GET /members", membersHandler.HandleMembers)
	mux.HandleFunc("GET /members/feed", membersHandler.HandleMembersFeed)
	mux.HandleFunc("GET /api/members", membersHandler.HandleAPIMembers)
	pageHandler.addTarget("/members", http.HandlerFunc(membersHandler.HandleMembers))

	// Legacy *.html filenames, then every other GET is a 404. Known paths
	// answer other methods with 405.
	mux.HandleFunc("GET /{name}", pageHandler.HandleLegacy)
	mux.HandleFunc("GET /", pageHandler.HandleNotFound)
}
