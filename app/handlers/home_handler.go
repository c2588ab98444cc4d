package handlers

import (
	"net/http"
)

// Home redirects to the product listing, the landing page of the app.
func Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/productos", http.StatusSeeOther)
}
