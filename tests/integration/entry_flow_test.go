package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"os"
	"testing"
	"time"
)

// Minimal PNG signature; enough for server-side content sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func TestEntryLifecycle(t *testing.T) {
	baseURL := os.Getenv("INTEGRATION_BASE_URL")
	if baseURL == "" {
		t.Skip("INTEGRATION_BASE_URL not set; skipping integration test")
	}

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Timeout: 5 * time.Second, Jar: jar}
	nano := time.Now().UnixNano()
	username := fmt.Sprintf("it_user_%d", nano)
	password := "Passw0rd!"
	title := fmt.Sprintf("Integration day %d", nano)

	// 1. Register
	registerReq := map[string]string{
		"username":          username,
		"password":          password,
		"security_question": "Favorite color?",
		"security_answer":   "blue",
	}
	if err := postJSON(client, baseURL+"/users/register", registerReq, http.StatusOK); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// 2. Login; the session rides in the cookie jar from here on.
	loginReq := map[string]string{"username": username, "password": password}
	if err := postJSON(client, baseURL+"/users/login", loginReq, http.StatusOK); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// 3. Create a public entry through the multipart form.
	form := map[string]string{
		"title":         title,
		"content":       "Wrote an end to end test today.",
		"mood":          "Happy",
		"tags":          "testing, go",
		"privacy_level": "public",
	}
	created, err := postMultipart(client, baseURL+"/entries", form, nil, http.StatusOK)
	if err != nil {
		t.Fatalf("entry create failed: %v", err)
	}
	if created["entry_id"] == nil {
		t.Fatal("entry create returned no entry_id")
	}

	// 4. The entry shows up in the list.
	listResp, err := getJSON(client, baseURL+"/entries", http.StatusOK)
	if err != nil {
		t.Fatalf("entry list failed: %v", err)
	}
	entries, _ := listResp["entries"].([]any)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	// 5. The public feed carries it with the mood emoji attached.
	feedResp, err := getJSON(client, baseURL+"/feed", http.StatusOK)
	if err != nil {
		t.Fatalf("feed failed: %v", err)
	}
	item := findByTitle(feedResp["items"], title)
	if item == nil {
		t.Fatal("public entry missing from the feed")
	}
	if item["mood_emoji"] != "😀" {
		t.Fatalf("expected mood emoji for Happy, got %v", item["mood_emoji"])
	}

	// 6. Analytics reflect the write.
	analytics, err := getJSON(client, baseURL+"/analytics", http.StatusOK)
	if err != nil {
		t.Fatalf("analytics failed: %v", err)
	}
	if analytics["stats"] == nil {
		t.Fatal("analytics returned no stats")
	}

	// 7. Profile update through the bound multipart form; a malformed
	// date of birth is rejected at validation.
	profile := map[string]string{"full_name": "Integration Tester", "date_of_birth": "1990-04-01"}
	if _, err := postMultipart(client, baseURL+"/users/profile", profile, nil, http.StatusOK); err != nil {
		t.Fatalf("profile update failed: %v", err)
	}
	me, err := getJSON(client, baseURL+"/users/me", http.StatusOK)
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	if me["full_name"] != "Integration Tester" {
		t.Fatalf("full_name not updated: %v", me["full_name"])
	}
	badProfile := map[string]string{"date_of_birth": "04/01/1990"}
	if _, err := postMultipart(client, baseURL+"/users/profile", badProfile, nil, http.StatusBadRequest); err != nil {
		t.Fatalf("malformed date of birth not rejected: %v", err)
	}

	// 8. Deleting a nonexistent category is a 404, not a silent success.
	if err := doDelete(client, baseURL+"/categories/999999999", http.StatusNotFound); err != nil {
		t.Fatalf("missing category delete: %v", err)
	}

	// 9. Logout kills the session.
	if err := postJSON(client, baseURL+"/users/logout", nil, http.StatusOK); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := getJSON(client, baseURL+"/entries", http.StatusUnauthorized); err != nil {
		t.Fatalf("expected unauthorized after logout: %v", err)
	}
}

func TestTagCountersAndPartialMedia(t *testing.T) {
	baseURL := os.Getenv("INTEGRATION_BASE_URL")
	if baseURL == "" {
		t.Skip("INTEGRATION_BASE_URL not set; skipping integration test")
	}

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Timeout: 5 * time.Second, Jar: jar}
	nano := time.Now().UnixNano()
	username := fmt.Sprintf("it_tags_%d", nano)
	tagA := fmt.Sprintf("it_taga_%d", nano)
	tagB := fmt.Sprintf("it_tagb_%d", nano)

	registerReq := map[string]string{"username": username, "password": "Passw0rd!"}
	if err := postJSON(client, baseURL+"/users/register", registerReq, http.StatusOK); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := postJSON(client, baseURL+"/users/login",
		map[string]string{"username": username, "password": "Passw0rd!"}, http.StatusOK); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Create with a duplicated tag and one invalid upload among a valid one.
	form := map[string]string{
		"title":   "Counter check",
		"content": "Tags and media.",
		"tags":    fmt.Sprintf("%s, %s, %s", tagA, tagA, tagB),
	}
	files := []uploadFile{
		{field: "media", name: "ok.png", content: pngBytes},
		{field: "media", name: "bogus.png", content: []byte("not an image")},
	}
	created, err := postMultipart(client, baseURL+"/entries", form, files, http.StatusOK)
	if err != nil {
		t.Fatalf("entry create failed: %v", err)
	}
	id, ok := created["entry_id"].(float64)
	if !ok {
		t.Fatalf("no entry_id in response: %v", created)
	}
	entryURL := fmt.Sprintf("%s/entries/%.0f", baseURL, id)

	// The bogus file is skipped; the entry still commits with the one
	// valid media row.
	got, err := getJSON(client, entryURL, http.StatusOK)
	if err != nil {
		t.Fatalf("entry get failed: %v", err)
	}
	entry, _ := got["entry"].(map[string]any)
	media, _ := entry["media"].([]any)
	if len(media) != 1 {
		t.Fatalf("expected exactly 1 media row, got %d", len(media))
	}

	// The duplicated tag collapses to a single usage increment.
	assertTagUsage(t, client, baseURL, tagA, 1)
	assertTagUsage(t, client, baseURL, tagB, 1)

	// Updating away a tag returns its counter to zero.
	update := map[string]string{
		"title":   "Counter check",
		"content": "Tags and media.",
		"tags":    tagB,
	}
	if _, err := sendMultipart(client, http.MethodPut, entryURL, update, nil, http.StatusOK); err != nil {
		t.Fatalf("entry update failed: %v", err)
	}
	assertTagUsage(t, client, baseURL, tagA, 0)
	assertTagUsage(t, client, baseURL, tagB, 1)

	// Deleting the entry unlinks the rest; counters never go negative.
	if err := doDelete(client, entryURL, http.StatusOK); err != nil {
		t.Fatalf("entry delete failed: %v", err)
	}
	assertTagUsage(t, client, baseURL, tagB, 0)
}

func TestPasswordResetFlow(t *testing.T) {
	baseURL := os.Getenv("INTEGRATION_BASE_URL")
	if baseURL == "" {
		t.Skip("INTEGRATION_BASE_URL not set; skipping integration test")
	}

	client := &http.Client{Timeout: 5 * time.Second}
	username := fmt.Sprintf("it_reset_%d", time.Now().UnixNano())

	registerReq := map[string]string{
		"username":          username,
		"password":          "Original1!",
		"security_question": "First school?",
		"security_answer":   "Hilltop",
	}
	if err := postJSON(client, baseURL+"/users/register", registerReq, http.StatusOK); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	startResp, err := postJSONWithResp(client, baseURL+"/password-reset/start",
		map[string]string{"username": username}, http.StatusOK)
	if err != nil {
		t.Fatalf("reset start failed: %v", err)
	}
	token, _ := startResp["token"].(string)
	if token == "" {
		t.Fatal("reset start returned no token")
	}

	// Wrong answer keeps the flow alive.
	if err := postJSON(client, baseURL+"/password-reset/answer",
		map[string]string{"token": token, "answer": "wrong"}, http.StatusBadRequest); err != nil {
		t.Fatalf("wrong answer: %v", err)
	}
	// The stored answer match is case-insensitive.
	if err := postJSON(client, baseURL+"/password-reset/answer",
		map[string]string{"token": token, "answer": "HILLTOP"}, http.StatusOK); err != nil {
		t.Fatalf("correct answer rejected: %v", err)
	}
	if err := postJSON(client, baseURL+"/password-reset/complete",
		map[string]string{"token": token, "password": "Changed1!"}, http.StatusOK); err != nil {
		t.Fatalf("reset complete failed: %v", err)
	}

	// New password works; old one does not.
	if err := postJSON(client, baseURL+"/users/login",
		map[string]string{"username": username, "password": "Original1!"}, http.StatusUnauthorized); err != nil {
		t.Fatalf("old password still accepted: %v", err)
	}
	if err := postJSON(client, baseURL+"/users/login",
		map[string]string{"username": username, "password": "Changed1!"}, http.StatusOK); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

// assertTagUsage checks a tag's usage_count via the popular-tags list.
// Tags at zero drop out of the list, so absence counts as zero.
func assertTagUsage(t *testing.T, client *http.Client, baseURL, name string, want int) {
	t.Helper()
	resp, err := getJSON(client, baseURL+"/categories", http.StatusOK)
	if err != nil {
		t.Fatalf("categories failed: %v", err)
	}
	got := 0
	if tags, ok := resp["popular_tags"].([]any); ok {
		for _, raw := range tags {
			tag, _ := raw.(map[string]any)
			if tag["name"] == name {
				got = int(tag["usage_count"].(float64))
				break
			}
		}
	}
	if got != want {
		t.Fatalf("tag %s usage_count = %d, want %d", name, got, want)
	}
}

func findByTitle(items any, title string) map[string]any {
	list, _ := items.([]any)
	for _, raw := range list {
		if item, ok := raw.(map[string]any); ok && item["title"] == title {
			return item
		}
	}
	return nil
}

type uploadFile struct {
	field   string
	name    string
	content []byte
}

func postJSON(client *http.Client, url string, payload any, wantStatus int) error {
	_, err := postJSONWithResp(client, url, payload, wantStatus)
	return err
}

func postJSONWithResp(client *http.Client, url string, payload any, wantStatus int) (map[string]any, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return doJSON(client, req, wantStatus)
}

func postMultipart(client *http.Client, url string, fields map[string]string, files []uploadFile, wantStatus int) (map[string]any, error) {
	return sendMultipart(client, http.MethodPost, url, fields, files, wantStatus)
}

func sendMultipart(client *http.Client, method, url string, fields map[string]string, files []uploadFile, wantStatus int) (map[string]any, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.name)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(f.content); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return doJSON(client, req, wantStatus)
}

func getJSON(client *http.Client, url string, wantStatus int) (map[string]any, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return doJSON(client, req, wantStatus)
}

func doDelete(client *http.Client, url string, wantStatus int) error {
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	_, err = doJSON(client, req, wantStatus)
	return err
}

func doJSON(client *http.Client, req *http.Request, wantStatus int) (map[string]any, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		return nil, fmt.Errorf("%s %s: status %d (want %d): %s",
			req.Method, req.URL.Path, resp.StatusCode, wantStatus, data)
	}
	out := map[string]any{}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &out)
	}
	return out, nil
}
