package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/ocean-watch/internal/service"
	"github.com/msomdec/ocean-watch/internal/view"
	datastar "github.com/starfederation/datastar-go/datastar"
)

// MembersHandler serves the member list as HTML, as an SSE fragment and as JSON.
type MembersHandler struct {
	members *service.MemberService
	views   *view.Views
}

// NewMembersHandler creates a new MembersHandler.
func NewMembersHandler(members *service.MemberService, views *view.Views) *MembersHandler {
	return &MembersHandler{members: members, views: views}
}

// HandleMembers renders every member as an HTML table, newest first.
// GET /members
func (h *MembersHandler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.ListAll(r.Context())
	if err != nil {
		slog.Error("list members", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	render(w, r, h.views.MembersPage(members))
}

// HandleMembersFeed refreshes the table body of the members page via SSE.
// GET /members/feed
func (h *MembersHandler) HandleMembersFeed(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.ListAll(r.Context())
	if err != nil {
		slog.Error("list members for feed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	sse.PatchElementTempl(
		h.views.MemberRows(members),
		datastar.WithSelectorID("member-rows"),
		datastar.WithModeInner(),
	)
}

// HandleAPIMembers returns every member as JSON.
// GET /api/members
// Response: {"data": [{"id":1,"name":"...","email":"...","city":"...","country":"...","interest":"...","created_at":"..."}]}
func (h *MembersHandler) HandleAPIMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.ListAll(r.Context())
	if err != nil {
		slog.Error("list members for api", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": toMemberDTOs(members),
	})
}
