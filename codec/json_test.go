package codec

import (
	"math"
	"strings"
	"testing"

	"github.com/confmorph/confmorph/ir"
)

func TestJSONDecode(t *testing.T) {
	in := `{"name":"test","version":"1.0.0","port":5432,"ratio":0.25,"on":true,"none":null,"tags":["a","b"]}`
	node, err := JSONCodec{}.Decode([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	want := ir.FromKeyVals([]ir.KeyVal{
		{Key: "name", Val: ir.FromString("test")},
		{Key: "version", Val: ir.FromString("1.0.0")},
		{Key: "port", Val: ir.FromInt(5432)},
		{Key: "ratio", Val: ir.FromFloat(0.25)},
		{Key: "on", Val: ir.FromBool(true)},
		{Key: "none", Val: ir.Null()},
		{Key: "tags", Val: ir.FromSlice([]*ir.Node{ir.FromString("a"), ir.FromString("b")})},
	})
	if !ir.Equal(node, want) {
		t.Errorf("decoded tree mismatch:\ngot  %+v\nwant %+v", node, want)
	}
}

func TestJSONDecodeKeyOrder(t *testing.T) {
	node, err := JSONCodec{}.Decode([]byte(`{"z":1,"a":2,"m":3}`))
	if err != nil {
		t.Fatal(err)
	}
	wantOrder := []string{"z", "a", "m"}
	for i, f := range node.Fields {
		if f != wantOrder[i] {
			t.Fatalf("field order = %v, want %v", node.Fields, wantOrder)
		}
	}
}

func TestJSONDecodeDuplicateKeyLastWins(t *testing.T) {
	node, err := JSONCodec{}.Decode([]byte(`{"a":1,"b":2,"a":3}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(node.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %v", node.Fields)
	}
	if got := ir.Get(node, "a"); *got.Int64 != 3 {
		t.Errorf("a = %d, want 3", *got.Int64)
	}
}

func TestJSONDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"trailing comma in object", `{"a":1,}`},
		{"trailing comma in array", `[1,2,]`},
		{"unquoted key", `{invalid}`},
		{"comment", `{"a":1}//x` + "\n"},
		{"line comment before value", `// hi
{"a":1}`},
		{"trailing garbage", `{"a":1}{"b":2}`},
		{"truncated", `{"a":`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (JSONCodec{}).Decode([]byte(tt.in)); err == nil {
				t.Errorf("Decode(%q) should fail", tt.in)
			}
		})
	}
}

func TestJSONEncodePretty(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "name", Val: ir.FromString("test")},
		{Key: "list", Val: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})},
		{Key: "empty", Val: ir.FromKeyVals(nil)},
		{Key: "nothing", Val: ir.Null()},
	})
	out, err := JSONCodec{}.Encode(node)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`{`,
		`  "name": "test",`,
		`  "list": [`,
		`    1,`,
		`    2`,
		`  ],`,
		`  "empty": {},`,
		`  "nothing": null`,
		`}`,
	}, "\n")
	requireText(t, want, string(out))
}

func TestJSONEncodeStringEscaping(t *testing.T) {
	node := ir.FromString("a\"b\\c\nd\u0001e<&>")
	out, err := JSONCodec{}.Encode(node)
	if err != nil {
		t.Fatal(err)
	}
	want := `"a\"b\\c\nd\u0001e<&>"`
	requireText(t, want, string(out))
}

func TestJSONEncodeRejectsNonFinite(t *testing.T) {
	inf := ir.FromFloat(1)
	*inf.Float64 = math.Inf(1)
	if _, err := (JSONCodec{}).Encode(inf); err == nil {
		t.Errorf("encoding +Inf should fail")
	}
}

func TestJSONSelfRoundTrip(t *testing.T) {
	in := `{"a":{"b":[1,2.5,"x",null,true]},"c":"d"}`
	node, err := JSONCodec{}.Decode([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	out, err := JSONCodec{}.Encode(node)
	if err != nil {
		t.Fatal(err)
	}
	again, err := JSONCodec{}.Decode(out)
	if err != nil {
		t.Fatalf("re-decode failed: %v\noutput was:\n%s", err, out)
	}
	if !ir.Equal(node, again) {
		t.Errorf("round trip changed the tree:\n%s", out)
	}
}
