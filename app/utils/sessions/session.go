package sessions

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "inventario-session"

	flashStatusKey  = "flash_status"
	flashMessageKey = "flash_message"
)

// FlashStore keeps the one-shot status/message pair shown after a redirect
// (success flag on create/update/delete, conflict and not-found feedback).
type FlashStore struct {
	store *sessions.CookieStore
}

func NewFlashStore(keyPairs ...[]byte) *FlashStore {
	store := sessions.NewCookieStore(keyPairs...)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(time.Hour / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &FlashStore{store: store}
}

func (f *FlashStore) getSession(r *http.Request) *sessions.Session {
	session, err := f.store.Get(r, sessionCookieName)
	if err != nil {
		log.Printf("FlashStore: error getting session: %v", err)
	}
	return session
}

// Set stores a flash consumed by the next rendered page.
func (f *FlashStore) Set(w http.ResponseWriter, r *http.Request, status, message string) {
	session := f.getSession(r)
	if session == nil {
		return
	}
	session.Values[flashStatusKey] = status
	session.Values[flashMessageKey] = message
	if err := session.Save(r, w); err != nil {
		log.Printf("FlashStore: error saving session: %v", err)
	}
}

// Pop returns the pending flash and clears it.
func (f *FlashStore) Pop(w http.ResponseWriter, r *http.Request) (status, message string) {
	session := f.getSession(r)
	if session == nil {
		return "", ""
	}

	status, _ = session.Values[flashStatusKey].(string)
	message, _ = session.Values[flashMessageKey].(string)
	if status == "" && message == "" {
		return "", ""
	}

	delete(session.Values, flashStatusKey)
	delete(session.Values, flashMessageKey)
	if err := session.Save(r, w); err != nil {
		log.Printf("FlashStore: error clearing flash: %v", err)
	}
	return status, message
}
