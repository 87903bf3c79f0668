// Package session carries per-browser state (cart, login, flash messages)
// through the request as an explicit object.
//
// Usage:
//
//	r.Use(session.Middleware(store, session.DefaultOptions()))
//
//	sess := session.FromContext(c)
//	sess.Cart.Add(foodID)
//
// The middleware persists the session after the handler returns when anything
// changed. Concurrent requests on the same session are last-write-wins.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/foodcourt/models"
	"github.com/yeremiapane/foodcourt/utils"
)

const contextKey = "session"

type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	HTTPOnly   bool
	SameSite   http.SameSite
	Path       string
}

func DefaultOptions() Options {
	return Options{
		CookieName: "foodcourt_session",
		TTL:        14 * 24 * time.Hour,
		HTTPOnly:   true,
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

type Session struct {
	id      string
	staleID string
	Cart    *models.Cart

	userID  uint
	role    string
	flashes []string
	changed bool

	writeCookie func(id string)
}

func newSession(id string) *Session {
	return &Session{id: id, Cart: models.NewCart(nil)}
}

func fromRecord(id string, rec *Record) *Session {
	return &Session{
		id:      id,
		Cart:    models.NewCart(rec.Cart),
		userID:  rec.UserID,
		role:    rec.Role,
		flashes: rec.Flashes,
	}
}

func (s *Session) record() *Record {
	return &Record{
		Cart:    s.Cart.Contents(),
		UserID:  s.userID,
		Role:    s.role,
		Flashes: s.flashes,
	}
}

func (s *Session) ID() string { return s.id }

// Modified reports whether the session must be written back.
func (s *Session) Modified() bool {
	return s.changed || s.Cart.Dirty()
}

// UserID returns the logged-in user, or 0 for anonymous sessions.
func (s *Session) UserID() uint { return s.userID }

func (s *Session) Role() string { return s.role }

func (s *Session) IsAuthenticated() bool { return s.userID != 0 }

// Login attaches a user and rotates the session id. The cart is kept.
func (s *Session) Login(userID uint, role string) {
	s.userID = userID
	s.role = role
	s.rotate()
}

// Logout drops everything, the cart included, and starts over with a new id.
func (s *Session) Logout() {
	s.userID = 0
	s.role = ""
	s.flashes = nil
	s.Cart = models.NewCart(nil)
	s.rotate()
}

func (s *Session) rotate() {
	if s.staleID == "" {
		s.staleID = s.id
	}
	s.id = uuid.NewString()
	s.changed = true
	if s.writeCookie != nil {
		s.writeCookie(s.id)
	}
}

// AddFlash queues a message for the next page the user sees.
func (s *Session) AddFlash(msg string) {
	s.flashes = append(s.flashes, msg)
	s.changed = true
}

// Flashes returns and clears the queued messages.
func (s *Session) Flashes() []string {
	if len(s.flashes) == 0 {
		return nil
	}
	out := s.flashes
	s.flashes = nil
	s.changed = true
	return out
}

func (s *Session) persist(ctx context.Context, store Store, ttl time.Duration) error {
	if s.staleID != "" {
		if err := store.Delete(ctx, s.staleID); err != nil {
			return err
		}
		s.staleID = ""
	}
	if !s.Modified() {
		return nil
	}
	if err := store.Save(ctx, s.id, s.record(), ttl); err != nil {
		return err
	}
	s.changed = false
	s.Cart.MarkClean()
	return nil
}

// Middleware loads the session named by the cookie, or starts a new one, and
// stores it in the gin context for the handlers.
func Middleware(store Store, opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		writeCookie := func(id string) {
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     opts.CookieName,
				Value:    id,
				Path:     opts.Path,
				MaxAge:   int(opts.TTL.Seconds()),
				HttpOnly: opts.HTTPOnly,
				Secure:   opts.Secure,
				SameSite: opts.SameSite,
			})
		}

		var sess *Session
		if cookie, err := c.Request.Cookie(opts.CookieName); err == nil && cookie.Value != "" {
			rec, err := store.Load(c.Request.Context(), cookie.Value)
			switch {
			case err == nil:
				sess = fromRecord(cookie.Value, rec)
			case errors.Is(err, ErrNotFound):
			default:
				utils.ErrorLogger.WithError(err).Error("session load failed, starting a new session")
			}
		}
		if sess == nil {
			sess = newSession(uuid.NewString())
			writeCookie(sess.id)
		}
		sess.writeCookie = writeCookie

		c.Set(contextKey, sess)
		c.Next()

		if err := sess.persist(c.Request.Context(), store, opts.TTL); err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{
				"path": c.Request.URL.Path,
			}).WithError(err).Error("session save failed")
		}
	}
}

// FromContext returns the request's session. Without the middleware a
// throwaway session is returned so handlers never see nil.
func FromContext(c *gin.Context) *Session {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	s := newSession(uuid.NewString())
	c.Set(contextKey, s)
	return s
}
