package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"portfolio_backend/internal/testutil/testserver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactFields() map[string]string {
	return map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"service": "Wedding",
		"date":    "2026-06-01",
		"message": "Hello!",
	}
}

func TestContact_Submit(t *testing.T) {
	ts := testserver.New(t)

	res, body := ts.SendMultipart(t, http.MethodPost, "/contact", contactFields())
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	out := testserver.Decode(t, body)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Your inquiry has been sent successfully! I will get back to you within 24 hours.", out["message"])
}

func TestContact_SubmitWithVideo(t *testing.T) {
	ts := testserver.New(t)

	res, body := ts.SendMultipart(t, http.MethodPost, "/api/contact", contactFields(), testserver.File{
		Field: "video", Name: "hello.mp4", ContentType: "video/mp4", Content: mp4Bytes(),
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	files := storedFiles(t, ts.StorageDir)
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(files[0], "contact-videos/"))
}

func TestContact_Validation(t *testing.T) {
	ts := testserver.New(t)

	fields := contactFields()
	fields["email"] = "not-an-email"
	delete(fields, "service")
	fields["date"] = "someday"

	res, body := ts.SendMultipart(t, http.MethodPost, "/contact", fields, testserver.File{
		Field: "video", Name: "hello.exe", ContentType: "application/octet-stream", Content: []byte("MZ"),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	out := testserver.Decode(t, body)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Validation failed", out["message"])
	errs := out["errors"].(map[string]interface{})
	for _, field := range []string{"email", "service", "date", "video"} {
		assert.Contains(t, errs, field)
	}
	assert.Empty(t, storedFiles(t, ts.StorageDir))
}
