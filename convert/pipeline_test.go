package convert

import (
	"strings"
	"testing"

	"github.com/confmorph/confmorph/format"
)

func TestConvertJSONToYAML(t *testing.T) {
	req := &Request{
		From:    format.JSONFormat,
		To:      format.YAMLFormat,
		Content: `{"name":"test","version":"1.0.0"}`,
	}
	out, err := Convert(req)
	if err != nil {
		t.Fatalf("convert failed: %+v", err)
	}
	if !strings.Contains(out, "name: test") || !strings.Contains(out, "version: 1.0.0") {
		t.Errorf("unexpected YAML output:\n%s", out)
	}
}

func TestConvertYAMLToLua(t *testing.T) {
	req := &Request{
		From:    format.YAMLFormat,
		To:      format.LuaFormat,
		Content: "database:\n  host: localhost\n  port: 5432",
	}
	out, err := Convert(req)
	if err != nil {
		t.Fatalf("convert failed: %+v", err)
	}
	want := `return { ["database"] = { ["host"] = "localhost", ["port"] = 5432 } }`
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestConvertParseFailure(t *testing.T) {
	req := &Request{
		From:    format.JSONFormat,
		To:      format.JSONFormat,
		Content: "{invalid}",
	}
	_, err := Convert(req)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if err.Code != "PARSE_JSON_FAILED" {
		t.Errorf("code = %s, want PARSE_JSON_FAILED", err.Code)
	}
	if err.Status != 422 {
		t.Errorf("status = %d, want 422", err.Status)
	}
	if err.Format != "json" {
		t.Errorf("format = %q, want json", err.Format)
	}
	if err.Message == "" || !strings.Contains(err.Message, "parse") {
		t.Errorf("message should carry the parser text: %q", err.Message)
	}
}

func TestConvertTOMLParseFailure(t *testing.T) {
	req := &Request{
		From:    format.TOMLFormat,
		To:      format.JSONFormat,
		Content: "invalid = ",
	}
	_, err := Convert(req)
	if err == nil || err.Code != "PARSE_TOML_FAILED" {
		t.Fatalf("expected PARSE_TOML_FAILED, got %+v", err)
	}
}

func TestConvertEncodeFailure(t *testing.T) {
	// null has no TOML rendering; the failure must name the target format
	req := &Request{
		From:    format.JSONFormat,
		To:      format.TOMLFormat,
		Content: `{"a":null}`,
	}
	_, err := Convert(req)
	if err == nil {
		t.Fatal("expected an encode error")
	}
	if err.Code != "STRINGIFY_TOML_FAILED" {
		t.Errorf("code = %s, want STRINGIFY_TOML_FAILED", err.Code)
	}
	if err.Status != 422 {
		t.Errorf("status = %d, want 422", err.Status)
	}
}

func TestConvertJSONIdempotent(t *testing.T) {
	in := `{"b":1,"a":[true,null,"x"]}`
	req := &Request{From: format.JSONFormat, To: format.JSONFormat, Content: in}
	out, err := Convert(req)
	if err != nil {
		t.Fatalf("convert failed: %+v", err)
	}
	second, err := Convert(&Request{From: format.JSONFormat, To: format.JSONFormat, Content: out})
	if err != nil {
		t.Fatalf("second convert failed: %+v", err)
	}
	if out != second {
		t.Errorf("json -> json is not stable:\n%q\n%q", out, second)
	}
}

func TestClassifyUnknownStage(t *testing.T) {
	err := Classify(Stage("bogus"), format.JSONFormat, errFake("boom"))
	if err.Code != CodeInternal {
		t.Errorf("code = %s, want %s", err.Code, CodeInternal)
	}
	if strings.Contains(err.Message, "boom") {
		t.Errorf("internal errors must not leak detail: %q", err.Message)
	}
}

type errFake string

func (e errFake) Error() string { return string(e) }
