// Package session gère le jeton CSRF, les en-têtes communs et la
// connexion à la plateforme.
package session

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/patrickprogramme/edxdl/internal/fetch"
)

const (
	// TokenCookie est le nom du cookie qui porte le jeton anti-CSRF.
	TokenCookie = "csrftoken"

	DefaultBaseURL   = "https://courses.edx.org"
	DefaultUserAgent = fetch.DefaultUserAgent

	acceptHeader      = "application/json, text/javascript, */*; q=0.01"
	contentTypeHeader = "application/x-www-form-urlencoded;charset=utf-8"
)

// Session est construite une seule fois par exécution puis n'est plus modifiée.
// Le client HTTP conserve le cookie jar : il doit servir à toutes les requêtes.
type Session struct {
	Info    WebsiteInfo
	Token   string
	Headers http.Header
	Client  *http.Client
}

// Options permet de surcharger le user-agent et le transport (tests).
type Options struct {
	UserAgent string
	Transport http.RoundTripper
}

// New ouvre un client avec cookie jar, récupère le jeton CSRF sur baseURL
// et construit les en-têtes.
func New(ctx context.Context, baseURL string, opts Options) (*Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	client := &http.Client{Jar: jar, Transport: opts.Transport}

	token := ObtainToken(ctx, client, baseURL)
	return &Session{
		Info:    NewWebsiteInfo(baseURL),
		Token:   token,
		Headers: BuildHeaders(token, baseURL, opts.UserAgent),
		Client:  client,
	}, nil
}

// ObtainToken fait un GET sur baseURL puis cherche le cookie csrftoken dans le jar.
// Ne retourne jamais d'erreur : un jeton vide est un résultat valide (dégradé).
func ObtainToken(ctx context.Context, client *http.Client, baseURL string) string {
	if client == nil || client.Jar == nil {
		log.Printf("[warning] pas de cookie jar, jeton CSRF vide")
		return ""
	}
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		log.Printf("[warning] jeton CSRF: requête invalide: %v", err)
		return ""
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("[warning] jeton CSRF: %v", err)
		return ""
	}
	resp.Body.Close()

	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == TokenCookie {
			return c.Value
		}
	}
	return ""
}

// BuildHeaders compose l'ensemble d'en-têtes fixe utilisé pour toutes les requêtes.
func BuildHeaders(token, baseURL, userAgent string) http.Header {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	h := http.Header{}
	h.Set("User-Agent", userAgent)
	h.Set("Accept", acceptHeader)
	h.Set("Content-Type", contentTypeHeader)
	h.Set("Referer", baseURL)
	h.Set("X-Requested-With", "XMLHttpRequest")
	h.Set("X-CSRFToken", token)
	return h
}

// Fetcher retourne un fetch.Client qui partage le cookie jar et les en-têtes de la session.
func (s *Session) Fetcher() *fetch.Client {
	return fetch.New(s.Client, s.Headers)
}
