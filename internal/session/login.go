package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

const defaultLoginFailure = "Wrong Email or Password."

// AuthError : identifiants refusés par la plateforme. Reason est destiné à l'utilisateur.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return "login failed: " + e.Reason
}

// WebsiteInfo regroupe les URLs dérivées de l'URL de base.
type WebsiteInfo struct {
	BaseURL      string // ex: https://courses.edx.org
	LoginURL     string // ex: https://courses.edx.org/login_ajax
	DashboardURL string // ex: https://courses.edx.org/dashboard
}

// NewWebsiteInfo construit les URLs ; baseURL vide => DefaultBaseURL.
func NewWebsiteInfo(baseURL string) WebsiteInfo {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return WebsiteInfo{
		BaseURL:      baseURL,
		LoginURL:     baseURL + "/login_ajax",
		DashboardURL: baseURL + "/dashboard",
	}
}

// WebsiteInfoFromCourseURL dérive l'URL de base (scheme://host) d'une URL de cours.
func WebsiteInfoFromCourseURL(courseURL string) (WebsiteInfo, error) {
	u, err := url.Parse(courseURL)
	if err != nil {
		return WebsiteInfo{}, fmt.Errorf("course url %q: %w", courseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return WebsiteInfo{}, fmt.Errorf("course url %q: scheme ou hôte manquant", courseURL)
	}
	return NewWebsiteInfo(u.Scheme + "://" + u.Host), nil
}

type loginResponse struct {
	Success json.RawMessage `json:"success"`
	Value   string          `json:"value"`
}

// truthy : absent, null, false, 0, "", [] et {} sont faux ; le reste est vrai.
func truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	}
	return true
}

// Login poste email/password (remember=false) avec les en-têtes de session.
// Retourne *AuthError si la plateforme refuse les identifiants, y compris
// quand le refus arrive avec un statut 4xx et un corps JSON.
func (s *Session) Login(ctx context.Context, email, password string) error {
	form := url.Values{
		"email":    {email},
		"password": {password},
		"remember": {"false"},
	}
	var resp loginResponse
	if err := s.Fetcher().SubmitForm(ctx, s.Info.LoginURL, form, &resp); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if !truthy(resp.Success) {
		reason := strings.TrimSpace(resp.Value)
		if reason == "" {
			reason = defaultLoginFailure
		}
		return &AuthError{Reason: reason}
	}
	return nil
}
