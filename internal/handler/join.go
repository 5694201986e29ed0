package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/ocean-watch/internal/domain"
	"github.com/msomdec/ocean-watch/internal/service"
	"github.com/msomdec/ocean-watch/internal/view"
)

const (
	flashCookieName = "join_flash"
	flashCookiePath = "/join/success"

	msgDuplicateEmail = "An account with this email already exists."
)

// JoinHandler handles the signup form.
type JoinHandler struct {
	members      *service.MemberService
	flash        *service.FlashSigner
	views        *view.Views
	metrics      *Metrics
	cookieSecure bool
}

// NewJoinHandler creates a new JoinHandler.
func NewJoinHandler(members *service.MemberService, flash *service.FlashSigner, views *view.Views, metrics *Metrics, cookieSecure bool) *JoinHandler {
	return &JoinHandler{
		members:      members,
		flash:        flash,
		views:        views,
		metrics:      metrics,
		cookieSecure: cookieSecure,
	}
}

// HandleJoinForm renders the empty signup form.
// GET /join
func (h *JoinHandler) HandleJoinForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.views.JoinPage(view.JoinForm{}))
}

// HandleJoin processes a signup submission.
// POST /join
//
// Invalid input and duplicate emails re-render the form with 200 and the
// input exactly as typed. Success redirects to /join/success.
func (h *JoinHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	input := domain.SignupInput{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		City:     r.PostFormValue("city"),
		Country:  r.PostFormValue("country"),
		Interest: r.PostFormValue("interest"),
	}

	member, err := h.members.Signup(r.Context(), input)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			h.metrics.ObserveSignup(SignupInvalid)
			alerts := make([]view.Alert, len(verr.Messages))
			for i, msg := range verr.Messages {
				alerts[i] = view.Alert{Kind: view.AlertDanger, Message: msg}
			}
			render(w, r, h.views.JoinPage(view.JoinForm{Values: input, Alerts: alerts}))
			return
		}
		if errors.Is(err, domain.ErrDuplicateEmail) {
			h.metrics.ObserveSignup(SignupDuplicate)
			alerts := []view.Alert{{Kind: view.AlertWarning, Message: msgDuplicateEmail}}
			render(w, r, h.views.JoinPage(view.JoinForm{Values: input, Alerts: alerts}))
			return
		}
		h.metrics.ObserveSignup(SignupError)
		slog.Error("signup member", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveSignup(SignupCreated)
	slog.Info("member joined", "member_id", member.ID)

	token, err := h.flash.Issue(member)
	if err != nil {
		// The member is stored; only the greeting is lost.
		slog.Error("issue join flash", "error", err)
	} else {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookieName,
			Value:    token,
			Path:     flashCookiePath,
			HttpOnly: true,
			Secure:   h.cookieSecure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(service.FlashTTL.Seconds()),
		})
	}

	http.Redirect(w, r, "/join/success", http.StatusSeeOther)
}

// HandleJoinSuccess renders the thank-you page, greeting the new member by
// name when a valid flash cookie is present. The cookie is single use.
// GET /join/success
func (h *JoinHandler) HandleJoinSuccess(w http.ResponseWriter, r *http.Request) {
	name := ""
	if cookie, err := r.Cookie(flashCookieName); err == nil {
		if n, err := h.flash.Read(cookie.Value); err == nil {
			name = n
		}
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookieName,
			Value:    "",
			Path:     flashCookiePath,
			HttpOnly: true,
			Secure:   h.cookieSecure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}

	render(w, r, h.views.JoinSuccessPage(name))
}
