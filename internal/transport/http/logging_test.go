package http

import (
	"strings"
	"testing"
)

func TestSanitizeBodyRedactsSecrets(t *testing.T) {
	body := []byte(`{"email":"a@x.com","otp":"123456","newPassword":"hunter2","nested":{"token":"abc"}}`)

	summary, ok := sanitizeBody(body, "application/json").(map[string]interface{})
	if !ok {
		t.Fatalf("expected a map summary, got %T", summary)
	}
	if summary["email"] != "a@x.com" {
		t.Fatalf("email should be kept, got %v", summary["email"])
	}
	for _, key := range []string{"otp", "newPassword"} {
		if summary[key] != redacted {
			t.Fatalf("%s should be redacted, got %v", key, summary[key])
		}
	}
	nested := summary["nested"].(map[string]interface{})
	if nested["token"] != redacted {
		t.Fatalf("nested token should be redacted, got %v", nested["token"])
	}
}

func TestSanitizeBodyFormAndMultipart(t *testing.T) {
	form := sanitizeBody([]byte("email=a%40x.com&password=pw"), "application/x-www-form-urlencoded").(map[string]interface{})
	if form["password"] != redacted || form["email"] != "a@x.com" {
		t.Fatalf("unexpected form summary %v", form)
	}

	multipart := "--b\r\nContent-Disposition: form-data; name=\"email\"\r\n\r\na@x.com\r\n" +
		"--b\r\nContent-Disposition: form-data; name=\"image\"; filename=\"a.png\"\r\n\r\n\x89PNG\r\n--b--\r\n"
	fields := sanitizeBody([]byte(multipart), "multipart/form-data; boundary=b").(map[string]interface{})
	if fields["image"] != "binary" || fields["email"] != "a@x.com" {
		t.Fatalf("unexpected multipart summary %v", fields)
	}
}

func TestSanitizeBodyTruncatesLargePayloads(t *testing.T) {
	long := `{"description":"` + strings.Repeat("x", maxLoggedBody*2) + `"}`
	summary := sanitizeBody([]byte(long), "application/json").(map[string]interface{})
	if summary["_truncated"] != true {
		t.Fatalf("expected truncated summary, got %v", summary)
	}
}
