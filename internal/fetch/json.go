package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// countingReader compte le nombre d'octets lus via Read.
type countingReader struct {
	R io.Reader
	N int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	if n > 0 {
		c.N += int64(n)
	}
	return n, err
}

// JSON télécharge rawURL et décode le JSON directement dans dst (dst doit être un pointeur).
// Utilise un json.Decoder sur un reader limité et détecte si le decode a nécessité
// plus de MaxBytes en vérifiant le compteur.
func (c *Client) JSON(ctx context.Context, rawURL string, dst interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	return c.decodeInto(req, dst, false)
}

// PostForm envoie values en application/x-www-form-urlencoded et décode la
// réponse JSON dans dst.
func (c *Client) PostForm(ctx context.Context, rawURL string, values url.Values, dst interface{}) error {
	req, err := c.newRequest(ctx, http.MethodPost, rawURL, strings.NewReader(values.Encode()))
	if err != nil {
		return err
	}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return c.decodeInto(req, dst, false)
}

// SubmitForm est PostForm, mais un statut 4xx dont le corps est du JSON est
// décodé dans dst au lieu d'être rejeté. Un corps 4xx non JSON reste une
// NetworkError (ErrStatus).
func (c *Client) SubmitForm(ctx context.Context, rawURL string, values url.Values, dst interface{}) error {
	req, err := c.newRequest(ctx, http.MethodPost, rawURL, strings.NewReader(values.Encode()))
	if err != nil {
		return err
	}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return c.decodeInto(req, dst, true)
}

func (c *Client) decodeInto(req *http.Request, dst interface{}, clientErrorBody bool) error {
	rawURL := req.URL.String()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &NetworkError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	clientError := resp.StatusCode >= 400 && resp.StatusCode < 500
	if (resp.StatusCode < 200 || resp.StatusCode >= 300) && !(clientErrorBody && clientError) {
		return &NetworkError{URL: rawURL, Status: resp.StatusCode, Err: ErrStatus}
	}

	limit := c.maxBytes()
	if resp.ContentLength > 0 && resp.ContentLength > limit {
		return &NetworkError{URL: rawURL, Status: resp.StatusCode, Err: ErrTooLarge}
	}

	// on crée un reader qui limite et qui compte les octets lus
	cr := &countingReader{R: io.LimitReader(resp.Body, limit+1)} // +1 pour détecter dépassement
	if err := json.NewDecoder(cr).Decode(dst); err != nil {
		if clientError {
			return &NetworkError{URL: rawURL, Status: resp.StatusCode, Err: ErrStatus}
		}
		// erreur de décodage (JSON invalide, EOF inattendu, etc.)
		return fmt.Errorf("fetch json %s: decode: %w", rawURL, err)
	}

	// si on a lu plus que maxBytes, le decode a consommé maxBytes+1 => overflow
	if cr.N > limit {
		return &NetworkError{URL: rawURL, Status: resp.StatusCode, Err: ErrTooLarge}
	}
	return nil
}

// FetchJSON générique : fetch + unmarshal dans une valeur typée.
func FetchJSON[T any](ctx context.Context, c *Client, rawURL string) (T, error) {
	var zero T
	var v T
	if err := c.JSON(ctx, rawURL, &v); err != nil {
		return zero, err
	}
	return v, nil
}
