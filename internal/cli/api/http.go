package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// do выполняет запрос и читает тело целиком. Непустой token уходит Bearer-заголовком.
func do(ctx context.Context, method, url string, payload any, token string) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data, nil
}

// PostJSON отправляет JSON POST-запрос.
func PostJSON(ctx context.Context, url string, payload any, token string) (*http.Response, []byte, error) {
	return do(ctx, http.MethodPost, url, payload, token)
}

// PutJSON отправляет JSON PUT-запрос.
func PutJSON(ctx context.Context, url string, payload any, token string) (*http.Response, []byte, error) {
	return do(ctx, http.MethodPut, url, payload, token)
}

// Get выполняет GET-запрос.
func Get(ctx context.Context, url string, token string) (*http.Response, []byte, error) {
	return do(ctx, http.MethodGet, url, nil, token)
}

// Delete выполняет DELETE-запрос.
func Delete(ctx context.Context, url string, token string) (*http.Response, []byte, error) {
	return do(ctx, http.MethodDelete, url, nil, token)
}
