package util

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sampleDTO struct {
	Title string `json:"title" validate:"required,max=5"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestValidateDTO(t *testing.T) {
	tests := []struct {
		name string
		dto  sampleDTO
		want string
	}{
		{"ok", sampleDTO{Title: "hello"}, ""},
		{"missing", sampleDTO{}, "title is required"},
		{"too long", sampleDTO{Title: "hello!"}, "title must be at most 5 characters"},
		{"runes", sampleDTO{Title: "你好世界啊"}, ""},
		{"bad email", sampleDTO{Title: "a", Email: "nope"}, "email must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDTO(&tt.dto)
			if tt.want == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.want {
				t.Errorf("expected %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSanitizeText(t *testing.T) {
	got := SanitizeText("  <b>Hello</b> <script>alert(1)</script>& bye  ")
	if strings.Contains(got, "<") {
		t.Errorf("tags not stripped: %q", got)
	}
	if !strings.HasPrefix(got, "Hello") || !strings.HasSuffix(got, "& bye") {
		t.Errorf("unexpected text: %q", got)
	}
}

func TestSanitizeText_EscapedMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"escaped script", "&lt;script&gt;alert(1)&lt;/script&gt;", ""},
		{"double escaped tag", "&amp;lt;b&amp;gt;bold&amp;lt;/b&amp;gt;", "bold"},
		{"plain comparison", "a < b & c", "a < b & c"},
		{"apostrophe", "Ana's work", "Ana's work"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeText(tt.in)
			if got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	deep := "&amp;amp;amp;amp;amp;lt;script&amp;amp;amp;amp;amp;gt;alert(1)"
	if got := SanitizeText(deep); strings.Contains(got, "<script") {
		t.Errorf("deeply escaped markup came back as a tag: %q", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Title\n\n**bold** <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("markdown not rendered: %q", out)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("script not sanitised: %q", out)
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, limit             int
		wantPage, wantLimit, sk int
	}{
		{0, 0, 1, 5, 0},
		{2, 5, 2, 5, 5},
		{-3, 100, 1, 50, 0},
		{3, -1, 3, 1, 2},
	}
	for _, tt := range tests {
		p, l, s := ClampPage(tt.page, tt.limit, 5, 50)
		if p != tt.wantPage || l != tt.wantLimit || s != tt.sk {
			t.Errorf("ClampPage(%d,%d) = %d,%d,%d", tt.page, tt.limit, p, l, s)
		}
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeBase64Image(t *testing.T) {
	raw := pngBytes(t, 3, 2)
	enc := base64.StdEncoding.EncodeToString(raw)

	for _, payload := range []string{enc, "data:image/png;base64," + enc} {
		data, err := DecodeBase64Image(payload)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if !bytes.Equal(data, raw) {
			t.Error("decoded bytes differ")
		}
	}

	if _, err := DecodeBase64Image("!!not base64!!"); err != ErrBase64Invalid {
		t.Errorf("expected ErrBase64Invalid, got %v", err)
	}
}

func TestImageProbe(t *testing.T) {
	raw := pngBytes(t, 3, 2)
	if mt := DetectMimeType(raw); mt != "image/png" {
		t.Errorf("DetectMimeType = %q", mt)
	}
	if w, h := ImageDimensions(raw); w != 3 || h != 2 {
		t.Errorf("ImageDimensions = %d x %d", w, h)
	}
	if w, h := ImageDimensions([]byte("plain text")); w != 0 || h != 0 {
		t.Errorf("expected 0x0 for undecodable data, got %d x %d", w, h)
	}
}

func TestDetectMimeType_Formats(t *testing.T) {
	ftyp := func(brand string) []byte {
		raw := append([]byte{0, 0, 0, 16}, []byte("ftyp"+brand)...)
		return append(raw, 0, 0, 0, 0)
	}

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"heic", ftyp("heic"), "image/heic"},
		{"avif", ftyp("avif"), "image/avif"},
		{"svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`), "image/svg+xml"},
		{"text without charset", []byte("plain text"), "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectMimeType(tt.data); got != tt.want {
				t.Errorf("DetectMimeType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCopy_ObjectIDToHex(t *testing.T) {
	type src struct {
		ID     primitive.ObjectID
		UserID *primitive.ObjectID
		Title  string
	}
	type dst struct {
		ID     string
		UserID string
		Title  string
	}

	id := primitive.NewObjectID()
	owner := primitive.NewObjectID()

	var out dst
	if err := Copy(&out, &src{ID: id, UserID: &owner, Title: "t"}); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if out.ID != id.Hex() || out.UserID != owner.Hex() || out.Title != "t" {
		t.Errorf("unexpected copy result: %+v", out)
	}

	var anon dst
	if err := Copy(&anon, &src{ID: id}); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if anon.UserID != "" {
		t.Errorf("nil ObjectID should map to empty string, got %q", anon.UserID)
	}
}
