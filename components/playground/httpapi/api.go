package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	playground "github.com/goliatone/go-playground/components/playground"
)

// SessionResolver extracts the session of a request, if any.
type SessionResolver func(*http.Request) (playground.Session, bool)

// Handlers exposes net/http endpoints backed by the shared commands.
type Handlers struct {
	API     Executor
	Session SessionResolver
}

func (h *Handlers) endpoints() Endpoints {
	return Endpoints{API: h.API}
}

func (h *Handlers) HandleGesture(w http.ResponseWriter, r *http.Request, widget string) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	write(w, h.endpoints().Gesture(r.Context(), widget, body))
}

func (h *Handlers) HandleSetDelay(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	write(w, h.endpoints().SetDelay(r.Context(), body))
}

func (h *Handlers) HandleRegistrationField(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	write(w, h.endpoints().RegistrationField(r.Context(), body))
}

func (h *Handlers) HandleSubmitRegistration(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	write(w, h.endpoints().SubmitRegistration(r.Context(), body))
}

func (h *Handlers) HandleDismissConfirmation(w http.ResponseWriter, r *http.Request) {
	write(w, h.endpoints().DismissConfirmation(r.Context()))
}

func (h *Handlers) HandleTableInput(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	write(w, h.endpoints().TableInput(r.Context(), body))
}

func (h *Handlers) HandleAddRow(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	write(w, h.endpoints().AddRow(r.Context(), body))
}

func (h *Handlers) HandleDeleteRow(w http.ResponseWriter, r *http.Request, rowID string) {
	write(w, h.endpoints().DeleteRow(r.Context(), rowID))
}

func (h *Handlers) HandleEditRow(w http.ResponseWriter, r *http.Request, rowID string) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	write(w, h.endpoints().EditRow(r.Context(), rowID, body))
}

func (h *Handlers) HandleReorderRows(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	write(w, h.endpoints().ReorderRows(r.Context(), body))
}

func (h *Handlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	write(w, h.endpoints().Reset(r.Context()))
}

func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	write(w, h.endpoints().Login(r.Context(), body))
}

func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var session playground.Session
	if h.Session != nil {
		session, _ = h.Session(r)
	}
	write(w, h.endpoints().Logout(r.Context(), session))
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Body == nil {
		return nil, true
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

func write(w http.ResponseWriter, resp Response) {
	if resp.SetCookie != "" {
		w.Header().Add("Set-Cookie", resp.SetCookie)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	if resp.Body != nil {
		_ = json.NewEncoder(w).Encode(resp.Body)
	}
}
