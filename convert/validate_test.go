package convert

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/confmorph/confmorph/format"
)

func rawReq(from, to, content string) *RawRequest {
	quote := func(s string) json.RawMessage {
		b, _ := json.Marshal(s)
		return b
	}
	return &RawRequest{From: quote(from), To: quote(to), Content: quote(content)}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name       string
		raw        *RawRequest
		wantCode   string
		wantStatus int
	}{
		{"valid", rawReq("json", "yaml", "{}"), "", 0},
		{"missing from", &RawRequest{To: json.RawMessage(`"json"`), Content: json.RawMessage(`"{}"`)}, CodeInvalidFrom, 400},
		{"from wrong type", &RawRequest{From: json.RawMessage(`5`), To: json.RawMessage(`"json"`), Content: json.RawMessage(`"{}"`)}, CodeInvalidFrom, 400},
		{"from unknown", rawReq("xml", "json", "{}"), CodeUnsupportedFrom, 400},
		{"missing to", &RawRequest{From: json.RawMessage(`"json"`), Content: json.RawMessage(`"{}"`)}, CodeInvalidTo, 400},
		{"to wrong type", &RawRequest{From: json.RawMessage(`"json"`), To: json.RawMessage(`[1]`), Content: json.RawMessage(`"{}"`)}, CodeInvalidTo, 400},
		{"to unknown", rawReq("json", "ini", "{}"), CodeUnsupportedTo, 400},
		{"missing content", &RawRequest{From: json.RawMessage(`"json"`), To: json.RawMessage(`"yaml"`)}, CodeInvalidContent, 400},
		{"empty content", rawReq("json", "yaml", ""), CodeInvalidContent, 400},
		{"content wrong type", &RawRequest{From: json.RawMessage(`"json"`), To: json.RawMessage(`"yaml"`), Content: json.RawMessage(`42`)}, CodeInvalidContent, 400},
		{"from lua", rawReq("lua", "json", "{name='x'}"), CodeUnsupportedFromLua, 400},
		{"to lua is fine", rawReq("json", "lua", "{}"), "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ValidateRequest(tt.raw)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %+v", err)
				}
				if req == nil {
					t.Fatal("nil request on success")
				}
				return
			}
			if err == nil {
				t.Fatalf("expected %s, got success", tt.wantCode)
			}
			if err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", err.Code, tt.wantCode)
			}
			if err.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", err.Status, tt.wantStatus)
			}
		})
	}
}

func TestValidateContentCeiling(t *testing.T) {
	atLimit := strings.Repeat("a", MaxContentBytes)
	if _, err := ValidateRequest(rawReq("json", "json", atLimit)); err != nil && err.Code == CodeContentTooLarge {
		t.Errorf("content of exactly %d bytes must pass the size gate", MaxContentBytes)
	}
	over := strings.Repeat("a", MaxContentBytes+1)
	verr := func() *Error {
		_, err := ValidateRequest(rawReq("json", "json", over))
		return err
	}()
	if verr == nil || verr.Code != CodeContentTooLarge {
		t.Fatalf("expected CONTENT_TOO_LARGE, got %+v", verr)
	}
	if verr.Status != 413 {
		t.Errorf("status = %d, want 413", verr.Status)
	}
}

// Every (from, to) pair either converts or is rejected by the lua-source
// branch; nothing falls through without an explicit outcome.
func TestFormatGateCompleteness(t *testing.T) {
	contentFor := map[format.Format]string{
		format.JSONFormat: `{"a":1}`,
		format.YAMLFormat: "a: 1\n",
		format.TOMLFormat: "a = 1\n",
		format.LuaFormat:  "return { }",
	}
	for _, from := range format.AllFormats() {
		for _, to := range format.AllFormats() {
			t.Run(from.String()+"_to_"+to.String(), func(t *testing.T) {
				req, verr := ValidateRequest(rawReq(from.String(), to.String(), contentFor[from]))
				if from.IsLua() {
					if verr == nil || verr.Code != CodeUnsupportedFromLua {
						t.Fatalf("from=lua must yield UNSUPPORTED_FROM_LUA, got %+v", verr)
					}
					return
				}
				if verr != nil {
					t.Fatalf("unexpected gate error: %+v", verr)
				}
				out, cerr := Convert(req)
				if cerr != nil {
					t.Fatalf("conversion failed: %+v", cerr)
				}
				if out == "" {
					t.Errorf("empty output for %s -> %s", from, to)
				}
			})
		}
	}
}
