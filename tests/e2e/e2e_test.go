//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"
)

// TestE2ESmoke walks the whole product flow against a running server:
// sign up, sign in, build a routine, mark it done, check the streak,
// set a reminder, and upload a selfie.
func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("GLOWTRACK_BASE_URL", "http://localhost:8080")

	client := newBrowser(t)

	email := fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano())
	signup(t, client, baseURL, "e2e-user", email, "secret1")
	signin(t, client, baseURL, email, "secret1")

	addStep(t, client, baseURL, "Cleanser")
	addStep(t, client, baseURL, "Moisturizer")
	assertPageContains(t, client, baseURL+"/routine", "Cleanser", "Moisturizer")

	markDone(t, client, baseURL)
	markDone(t, client, baseURL) // idempotent
	assertPageContains(t, client, baseURL+"/streak", "1 day")

	setReminder(t, client, baseURL, "08:30")
	assertPageContains(t, client, baseURL+"/reminders", "08:30")

	stored := uploadSelfie(t, client, baseURL, "progress.png")
	assertPageContains(t, client, baseURL+"/uploads/"+stored, "fake-png-bytes")

	assertPageContains(t, client, baseURL+"/insights", "Total days completed")
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// newBrowser returns a cookie-carrying client that does not follow
// redirects, so tests can assert on Location headers.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar:     jar,
		Timeout: 10 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func signup(t *testing.T, client *http.Client, baseURL, username, email, password string) {
	t.Helper()
	resp := postForm(t, client, baseURL+"/signup", url.Values{
		"username": {username},
		"email":    {email},
		"password": {password},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("signup status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
	if loc := resp.Header.Get("Location"); loc != "/dashboard" {
		t.Fatalf("signup redirect = %q, want /dashboard", loc)
	}
}

func signin(t *testing.T, client *http.Client, baseURL, email, password string) {
	t.Helper()
	resp := postForm(t, client, baseURL+"/signin", url.Values{
		"email":    {email},
		"password": {password},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("signin status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
	if loc := resp.Header.Get("Location"); loc != "/dashboard" {
		t.Fatalf("signin redirect = %q, want /dashboard", loc)
	}
}

func addStep(t *testing.T, client *http.Client, baseURL, name string) {
	t.Helper()
	resp := postForm(t, client, baseURL+"/routine", url.Values{"step_name": {name}})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("add step status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
}

func markDone(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()
	resp := postForm(t, client, baseURL+"/routine/mark-done", url.Values{})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("mark-done status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode mark-done response: %v", err)
	}
	if !result.Success {
		t.Fatalf("mark-done success = false: %s", result.Message)
	}
}

func setReminder(t *testing.T, client *http.Client, baseURL, at string) {
	t.Helper()
	resp := postForm(t, client, baseURL+"/reminders", url.Values{"reminder_time": {at}})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("set reminder status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
}

// uploadSelfie posts a photo and returns the stored filename from the
// result redirect.
func uploadSelfie(t *testing.T, client *http.Client, baseURL, filename string) string {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("photo", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("fake-png-bytes")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req, err := http.NewRequest("POST", baseURL+"/selfie", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("upload selfie: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("upload status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
	location := resp.Header.Get("Location")
	if !strings.HasPrefix(location, "/selfie/result/") {
		t.Fatalf("upload redirect = %q, want /selfie/result/...", location)
	}
	return strings.TrimPrefix(location, "/selfie/result/")
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(target, form)
	if err != nil {
		t.Fatalf("POST %s: %v", target, err)
	}
	return resp
}

func assertPageContains(t *testing.T, client *http.Client, target string, wants ...string) {
	t.Helper()
	resp, err := client.Get(target)
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s status = %d, want %d", target, resp.StatusCode, http.StatusOK)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	for _, want := range wants {
		if !strings.Contains(string(body), want) {
			t.Errorf("GET %s missing %q", target, want)
		}
	}
}
