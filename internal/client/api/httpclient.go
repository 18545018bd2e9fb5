package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, payload any, token string) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (RegisterResult, error) {

	resp, err := c.postJSON(ctx, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	if err != nil {
		return RegisterResult{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return RegisterResult{Succeeded: true}, nil
	case http.StatusBadRequest:
		var result RegisterResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return RegisterResult{}, fmt.Errorf("decoding response: %w", err)
		}
		if len(result.Reasons) == 0 {
			result.Reasons = []string{"invalid request"}
		}
		return result, nil
	default:
		return RegisterResult{}, fmt.Errorf("%w: unexpected status %d", ErrRejected, resp.StatusCode)
	}
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {

	resp, err := c.postJSON(ctx, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", fmt.Errorf("decoding response: %w", err)
		}
		return body.AccessToken, nil
	case http.StatusUnauthorized:
		return "", ErrUnauthorized
	default:
		return "", fmt.Errorf("%w: unexpected status %d", ErrRejected, resp.StatusCode)
	}
}

func (c *HTTPClient) Profile(ctx context.Context, token string) (*Profile, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/user/profile", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var profile Profile
		if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
			return nil, fmt.Errorf("decoding response: %w", err)
		}
		return &profile, nil
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrRejected, resp.StatusCode)
	}
}

func (c *HTTPClient) UploadAvatar(ctx context.Context, token, fileName string, body io.Reader, uploadedAt time.Time) (string, error) {

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(fw, body); err != nil {
		return "", err
	}
	if err := mw.WriteField("uploaded_at", uploadedAt.UTC().Format(time.RFC3339)); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/user/profile", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var result struct {
			AssetRef string `json:"asset_ref"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return "", fmt.Errorf("decoding response: %w", err)
		}
		return result.AssetRef, nil
	case http.StatusUnauthorized:
		return "", ErrUnauthorized
	default:
		return "", fmt.Errorf("%w: unexpected status %d", ErrRejected, resp.StatusCode)
	}
}

func (c *HTTPClient) Ping(ctx context.Context) error {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}
