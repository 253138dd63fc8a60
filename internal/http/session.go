package http

import (
	"net/http"
	"time"

	"finboard/internal/session"
)

// SessionCookieName identifies the visitor's transaction store.
const SessionCookieName = "finboard_session"

// session returns the caller's session, starting a new one (and setting the
// cookie) when the request carries no live session.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	var id string
	if c, err := r.Cookie(SessionCookieName); err == nil {
		id = c.Value
	}

	sess, created, err := s.registry.Resolve(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
			Expires:  time.Now().Add(24 * time.Hour),
		})
	}
	return sess, nil
}
