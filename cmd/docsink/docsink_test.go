package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/signadot/docsink/bsondoc"
	"github.com/signadot/docsink/format"
	"github.com/signadot/docsink/gomap"
	"github.com/signadot/docsink/ir"
	"github.com/signadot/docsink/stream"
)

func TestReplayReader(t *testing.T) {
	in := `{"t":"BeginObject"}
{"t":"Key","k":"a"}
{"t":"Int32","i":1}
{"t":"EndObject"}
{"t":"String","s":"x"}
`
	cfg := &ReplayConfig{MainConfig: &MainConfig{WireOut: true}}
	buf := bytes.NewBuffer(nil)
	if err := replayReader(cfg, newDocWriter(cfg.MainConfig, buf), strings.NewReader(in)); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "{\"a\":1}\n\"x\"\n" {
		t.Errorf("got %q", got)
	}
}

func TestReplayReaderTruncated(t *testing.T) {
	cfg := &ReplayConfig{MainConfig: &MainConfig{}, Validate: true}
	err := replayReader(cfg, newDocWriter(cfg.MainConfig, bytes.NewBuffer(nil)), strings.NewReader(`{"t":"BeginArray"}`))
	if err == nil {
		t.Error("expected error for truncated stream")
	}
}

func TestBSONThroughEvents(t *testing.T) {
	var in bytes.Buffer
	for _, d := range []bson.D{{{Key: "a", Value: int32(1)}}, {{Key: "b", Value: bson.A{"x"}}}} {
		raw, err := bson.Marshal(d)
		if err != nil {
			t.Fatal(err)
		}
		in.Write(raw)
	}
	evBuf := bytes.NewBuffer(nil)
	ew := stream.NewJSONEventWriter(evBuf)
	n := 0
	err := eachBSON(&in, func(i int, raw bson.Raw) error {
		n++
		return writeEvents(raw, ew)
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 documents, got %d", n)
	}
	f := format.ExtJSONFormat
	cfg := &ReplayConfig{MainConfig: &MainConfig{OutFormat: &f}}
	out := bytes.NewBuffer(nil)
	if err := replayReader(cfg, newDocWriter(cfg.MainConfig, out), evBuf); err != nil {
		t.Fatal(err)
	}
	want := "{\"a\":1}\n{\"b\":[\"x\"]}\n"
	if out.String() != want {
		t.Errorf("got %q", out.String())
	}
}

func TestDocWriterBSON(t *testing.T) {
	raw, err := bson.Marshal(bson.D{{Key: "k", Value: "v"}})
	if err != nil {
		t.Fatal(err)
	}
	f := format.BSONFormat
	cfg := &MainConfig{OutFormat: &f}
	out := bytes.NewBuffer(nil)
	dw := newDocWriter(cfg, out)
	err = eachBSON(bytes.NewReader(raw), func(i int, raw bson.Raw) error {
		node, err := bsondoc.Decode(raw)
		if err != nil {
			return err
		}
		return dw.write(node)
	})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), raw) {
		t.Errorf("bson output differs from input")
	}
}

func TestJSONToBSON(t *testing.T) {
	f := format.BSONFormat
	cfg := &MainConfig{OutFormat: &f}
	out := bytes.NewBuffer(nil)
	dw := newDocWriter(cfg, out)
	c := gomap.NewJSONCursor(strings.NewReader(`{"strings": ["argh"], "n": 1}`))
	node, err := gomap.ReadNode(c)
	if err != nil {
		t.Fatal(err)
	}
	if err := dw.write(node); err != nil {
		t.Fatal(err)
	}
	var got struct {
		Strings []string `bson:"strings"`
		N       int32    `bson:"n"`
	}
	if err := bson.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Strings) != 1 || got.Strings[0] != "argh" || got.N != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestDocWriterIR(t *testing.T) {
	f := format.IRFormat
	cfg := &MainConfig{OutFormat: &f}
	out := bytes.NewBuffer(nil)
	node, err := gomap.ReadNode(gomap.NewJSONCursor(strings.NewReader(`{"n": 1, "l": 5000000000}`)))
	if err != nil {
		t.Fatal(err)
	}
	if err := newDocWriter(cfg, out).write(node); err != nil {
		t.Fatal(err)
	}
	got := &ir.Node{}
	if err := json.Unmarshal(out.Bytes(), got); err != nil {
		t.Fatal(err)
	}
	if ir.Compare(got, node) != 0 {
		t.Errorf("ir output does not decode to the document: %s", out)
	}
	if n := ir.Get(got, "n"); n == nil || n.NumKind != ir.Int32Kind {
		t.Errorf("number kind lost: %s", out)
	}
}
