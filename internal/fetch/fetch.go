// Package fetch fournit le client HTTP authentifié utilisé pour récupérer
// les pages de la plateforme (dashboard, courseware, semaines, sous-titres).
//
// Toutes les requêtes passent par le même *http.Client (et donc le même
// cookie jar) et portent les mêmes en-têtes que la session.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html/charset"
)

const (
	DefaultMaxBytes  = 50_000_000
	DefaultUserAgent = "edX-downloader/0.01"
)

// Erreurs exportées
var (
	ErrStatus   = errors.New("unexpected HTTP status")
	ErrTooLarge = errors.New("response body too large")
)

// NetworkError signale un échec de transport ou un statut HTTP non 2xx.
// L'appelant décide si c'est fatal (pages du cours) ou non (sous-titres).
type NetworkError struct {
	URL    string
	Status int // 0 si la requête n'a pas abouti
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: http status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Client regroupe le client HTTP et les en-têtes à appliquer à chaque requête.
type Client struct {
	HTTP     *http.Client
	Header   http.Header
	MaxBytes int64 // si <=0 on utilise DefaultMaxBytes
}

// New construit un Client. httpClient nil => http.DefaultClient.
func New(httpClient *http.Client, header http.Header) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{HTTP: httpClient, Header: header.Clone()}
}

func (c *Client) maxBytes() int64 {
	if c.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return c.MaxBytes
}

// newRequest applique les en-têtes de session à la requête.
func (c *Client) newRequest(ctx context.Context, method, rawURL string, body io.Reader) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	// valider l'URL tôt
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, &NetworkError{URL: rawURL, Err: fmt.Errorf("invalid url: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Err: fmt.Errorf("new request: %w", err)}
	}
	for k, vs := range c.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", DefaultUserAgent)
	}
	return req, nil
}

// do exécute la requête et retourne le corps brut (limité à MaxBytes).
// Un statut non 2xx est une NetworkError.
func (c *Client) do(req *http.Request) ([]byte, *http.Response, error) {
	rawURL := req.URL.String()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, nil, &NetworkError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp, &NetworkError{URL: rawURL, Status: resp.StatusCode, Err: ErrStatus}
	}

	limit := c.maxBytes()
	// si Content-Length connu et supérieur à maxBytes -> échouer vite
	if resp.ContentLength > 0 && resp.ContentLength > limit {
		return nil, resp, &NetworkError{URL: rawURL, Status: resp.StatusCode, Err: ErrTooLarge}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1)) // +1 pour détecter dépassement
	if err != nil {
		return nil, resp, &NetworkError{URL: rawURL, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(data)) > limit {
		return nil, resp, &NetworkError{URL: rawURL, Status: resp.StatusCode, Err: ErrTooLarge}
	}
	return data, resp, nil
}

// Bytes télécharge l'URL et retourne les octets bruts.
func (c *Client) Bytes(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	data, _, err := c.do(req)
	return data, err
}

// Page télécharge l'URL et décode le texte avec le charset annoncé par la
// réponse (UTF-8 si rien n'est déclaré).
func (c *Client) Page(ctx context.Context, rawURL string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	data, resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	text, err := Decode(data, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", &NetworkError{URL: rawURL, Status: resp.StatusCode, Err: err}
	}
	return text, nil
}

// Decode convertit data en string selon le paramètre charset de contentType.
// Pas de charset (ou charset inconnu) => UTF-8.
func Decode(data []byte, contentType string) (string, error) {
	label := declaredCharset(contentType)
	if label == "" {
		return string(data), nil
	}
	enc, name := charset.Lookup(label)
	if enc == nil || name == "utf-8" {
		return string(data), nil
	}
	out, err := io.ReadAll(enc.NewDecoder().Reader(bytes.NewReader(data)))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	return string(out), nil
}

func declaredCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(params["charset"])
}
