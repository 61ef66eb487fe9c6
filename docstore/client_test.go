package docstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/skillsenselab/uploadrelay/errors"
	"github.com/skillsenselab/uploadrelay/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{
		BaseURL:  srv.URL,
		BotToken: "123:token",
		ChatID:   "-100555",
	}, logger.NewDefault("test"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestSendDocument(t *testing.T) {
	payload := "ten bytes!"

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bot123:token/sendDocument" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("chat_id"); got != "-100555" {
			t.Errorf("chat_id = %q", got)
		}
		if got := r.FormValue("caption"); !strings.Contains(got, "report") {
			t.Errorf("caption = %q", got)
		}

		file, header, err := r.FormFile("document")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "report.txt" {
			t.Errorf("filename = %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != payload {
			t.Errorf("file bytes = %q", data)
		}

		w.Write([]byte(`{"ok":true,"result":{"message_id":42,"document":{"file_id":"BQAC-1","file_name":"report.txt","file_size":10}}}`))
	})

	up, err := c.SendDocument(context.Background(), Document{
		Name:        "report.txt",
		ContentType: "text/plain",
		Size:        int64(len(payload)),
		Reader:      strings.NewReader(payload),
	}, "uploaded report by tester")
	if err != nil {
		t.Fatalf("SendDocument: %v", err)
	}
	if up.FileID != "BQAC-1" {
		t.Errorf("file id = %q", up.FileID)
	}
	if up.MessageID != 42 {
		t.Errorf("message id = %d", up.MessageID)
	}
}

func TestSendDocumentRemoteFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	})

	_, err := c.SendDocument(context.Background(), Document{
		Name: "x", Reader: strings.NewReader("x"),
	}, "")
	if err == nil {
		t.Fatal("expected error")
	}

	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("error type %T", err)
	}
	if appErr.Code != apperrors.ErrCodeUpstreamRejected {
		t.Errorf("code = %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "chat not found") {
		t.Errorf("message = %q, want remote description surfaced", appErr.Message)
	}
}

func TestSendDocumentRejectedWith200(t *testing.T) {
	// Some gateways answer 200 with ok:false; the flag wins.
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"file is too big"}`))
	})

	_, err := c.SendDocument(context.Background(), Document{
		Name: "x", Reader: strings.NewReader("x"),
	}, "")
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected app error, got %v", err)
	}
	if appErr.Message != "file is too big" {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestSendDocumentBadEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := c.SendDocument(context.Background(), Document{
		Name: "x", Reader: strings.NewReader("x"),
	}, "")
	if err == nil {
		t.Fatal("expected decode error")
	}
	if _, ok := apperrors.AsAppError(err); ok {
		t.Errorf("decode failure should not masquerade as an upstream rejection: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	log := logger.NewDefault("test")
	if _, err := New(Config{ChatID: "x"}, log); err == nil {
		t.Error("expected error for missing bot token")
	}
	if _, err := New(Config{BotToken: "x"}, log); err == nil {
		t.Error("expected error for missing chat id")
	}
}
