package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/etchlab/etchmark/pkg/cache"
	"github.com/etchlab/etchmark/pkg/errors"
	"github.com/etchlab/etchmark/pkg/profile"
)

func testOptions() Options {
	return Options{
		Request: Request{
			Title: "Array 7",
			Slots: []SlotRequest{
				{Position: 1, Identifier: 123454, Label: "PSU-A"},
				{Position: 5, Identifier: 99, LED: map[string]string{"1": "K7P"}},
			},
		},
		Profile: profile.Default(),
	}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := testOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("default formats = %v, want [svg]", opts.Formats)
	}
	if opts.PNGScale != DefaultPNGScale {
		t.Errorf("default PNG scale = %v, want %v", opts.PNGScale, DefaultPNGScale)
	}
	if opts.Renderer == nil {
		t.Error("default renderer not set")
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		opts := testOptions()
		opts.Formats = []string{"gif"}
		if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
			t.Errorf("error = %v, want INVALID_CONFIGURATION", err)
		}
	})

	t.Run("negative scale", func(t *testing.T) {
		opts := testOptions()
		opts.PNGScale = -1
		if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
			t.Errorf("error = %v, want INVALID_CONFIGURATION", err)
		}
	})

	t.Run("invalid profile", func(t *testing.T) {
		opts := testOptions()
		opts.Profile.Canvas.Width = 1
		if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
			t.Errorf("error = %v, want INVALID_CONFIGURATION", err)
		}
	})
}

func TestBuildDocument(t *testing.T) {
	opts := testOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	doc, err := BuildDocument(opts)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}

	svg, err := doc.Render(opts.Renderer)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := string(svg)
	for _, want := range []string{`id="slot-1"`, `id="slot-5"`, `id="microid-00123454"`} {
		if !strings.Contains(out, want) {
			t.Errorf("document missing %s", want)
		}
	}
}

func TestBuildDocumentErrors(t *testing.T) {
	t.Run("non-numeric LED key", func(t *testing.T) {
		opts := testOptions()
		opts.Request.Slots[1].LED = map[string]string{"one": "K7P"}
		if _, err := BuildDocument(opts); !errors.Is(err, errors.ErrCodeInvalidPosition) {
			t.Errorf("error = %v, want INVALID_POSITION", err)
		}
	})

	t.Run("duplicate position", func(t *testing.T) {
		opts := testOptions()
		opts.Request.Slots = append(opts.Request.Slots, SlotRequest{Position: 1, Identifier: 2})
		if _, err := BuildDocument(opts); !errors.Is(err, errors.ErrCodeInvalidPosition) {
			t.Errorf("error = %v, want INVALID_POSITION", err)
		}
	})

	t.Run("bad rotation", func(t *testing.T) {
		opts := testOptions()
		opts.Request.Rotation = 45
		if _, err := BuildDocument(opts); !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
			t.Errorf("error = %v, want INVALID_CONFIGURATION", err)
		}
	})
}

func TestParseLEDKeys(t *testing.T) {
	got, err := parseLEDKeys(map[string]string{"1": "K7P", "4": "F01"}, 2)
	if err != nil {
		t.Fatalf("parseLEDKeys: %v", err)
	}
	if got[1] != "K7P" || got[4] != "F01" {
		t.Errorf("parseLEDKeys = %v", got)
	}

	if got, err := parseLEDKeys(nil, 2); err != nil || got != nil {
		t.Errorf("parseLEDKeys(nil) = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestRunnerExecute(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, quietLogger())
	ctx := context.Background()

	first, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.DocumentHit {
		t.Error("first run reported a document cache hit")
	}
	svg, ok := first.Artifacts[FormatSVG]
	if !ok || len(svg) == 0 {
		t.Fatal("no SVG artifact produced")
	}
	if first.Stats.SlotCount != 2 {
		t.Errorf("slot count = %d, want 2", first.Stats.SlotCount)
	}
	if first.DocumentID == "" {
		t.Error("empty document id")
	}

	second, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Execute (cached): %v", err)
	}
	if !second.CacheInfo.DocumentHit {
		t.Error("second run missed the document cache")
	}
	if string(second.Artifacts[FormatSVG]) != string(svg) {
		t.Error("cached artifact differs from the original render")
	}
	if second.DocumentID == first.DocumentID {
		t.Error("document id reused across runs")
	}
}

func TestRunnerExecuteDeterministic(t *testing.T) {
	// With caching disabled, identical requests still render identically.
	r := NewRunner(cache.NewNullCache(), nil, quietLogger())
	ctx := context.Background()

	a, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	b, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if string(a.Artifacts[FormatSVG]) != string(b.Artifacts[FormatSVG]) {
		t.Error("identical requests rendered differently")
	}
	if b.CacheInfo.DocumentHit {
		t.Error("null cache reported a hit")
	}
}

func TestRunnerExecuteBuildFailure(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	opts := testOptions()
	opts.Request.Slots[0].Identifier = 0

	if _, err := r.Execute(context.Background(), opts); !errors.Is(err, errors.ErrCodeMissingRequiredField) {
		t.Errorf("Execute error = %v, want MISSING_REQUIRED_FIELD", err)
	}
}

func TestRequestHashStability(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())

	opts := testOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	a, err := r.requestHash(opts)
	if err != nil {
		t.Fatalf("requestHash: %v", err)
	}
	b, err := r.requestHash(opts)
	if err != nil {
		t.Fatalf("requestHash: %v", err)
	}
	if a != b {
		t.Error("request hash not stable")
	}

	opts.Request.Title = "Array 8"
	c, err := r.requestHash(opts)
	if err != nil {
		t.Fatalf("requestHash: %v", err)
	}
	if c == a {
		t.Error("request hash ignores the title")
	}
}
