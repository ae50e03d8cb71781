package media

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/justindarc/ultraspin/archive"
)

const root = "/hs"

func file() *fstest.MapFile { return &fstest.MapFile{Data: []byte("x")} }

type extractCall struct {
	archive string
	prefix  string
}

// fakeExtractor serves members from an in-memory map keyed by archive path.
type fakeExtractor struct {
	members map[string]map[string]bool
	calls   []extractCall
}

func (f *fakeExtractor) Extract(_ context.Context, archivePath, prefix string) (*archive.Asset, error) {
	f.calls = append(f.calls, extractCall{archivePath, prefix})
	if f.members[archivePath][prefix] {
		return &archive.Asset{Path: "/tmp/theme-x", Member: prefix, Archive: archivePath}, nil
	}
	if _, ok := f.members[archivePath]; !ok {
		return nil, &archive.IOError{Op: "open", Path: archivePath, Err: errors.New("missing")}
	}
	return nil, fmt.Errorf("%w: %s", archive.ErrNotFound, prefix)
}

func themePath(system, game string) string {
	return filepath.Join(root, "Media", system, "Themes", game+".zip")
}

func TestWheelImage(t *testing.T) {
	fsys := fstest.MapFS{"Media/MAME/Images/Wheel/pacman.png": file()}
	r := NewResolver(root, WithFS(fsys), WithExtractor(&fakeExtractor{}))

	if got, want := r.WheelImage("MAME", "pacman"), filepath.Join(root, "Media/MAME/Images/Wheel/pacman.png"); got != want {
		t.Errorf("WheelImage = %q, want %q", got, want)
	}
	if got := r.WheelImage("MAME", "galaga"); got != "" {
		t.Errorf("missing wheel = %q, want empty", got)
	}
}

func TestSpecialImagePrefersSWF(t *testing.T) {
	fsys := fstest.MapFS{
		"Media/MAME/Images/Special/SpecialA1.swf": file(),
		"Media/MAME/Images/Special/SpecialA1.png": file(),
		"Media/MAME/Images/Special/SpecialB1.png": file(),
	}
	r := NewResolver(root, WithFS(fsys), WithExtractor(&fakeExtractor{}))

	if got := r.SpecialImage("MAME", "SpecialA1"); filepath.Ext(got) != ".swf" {
		t.Errorf("SpecialA1 = %q, want .swf", got)
	}
	if got := r.SpecialImage("MAME", "SpecialB1"); filepath.Ext(got) != ".png" {
		t.Errorf("SpecialB1 = %q, want .png", got)
	}
	if got := r.SpecialImage("MAME", "SpecialC1"); got != "" {
		t.Errorf("SpecialC1 = %q, want empty", got)
	}
}

func TestVideoFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
		want string
	}{
		{
			name: "flv before mp4",
			fsys: fstest.MapFS{"Media/MAME/Video/pacman.flv": file(), "Media/MAME/Video/pacman.mp4": file()},
			want: "Media/MAME/Video/pacman.flv",
		},
		{
			name: "mp4",
			fsys: fstest.MapFS{"Media/MAME/Video/pacman.mp4": file()},
			want: "Media/MAME/Video/pacman.mp4",
		},
		{
			name: "sentinel",
			fsys: fstest.MapFS{"Media/Frontend/Video/No Video.mp4": file()},
			want: "Media/Frontend/Video/No Video.mp4",
		},
		{
			name: "nothing terminates",
			fsys: fstest.MapFS{},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(root, WithFS(tt.fsys), WithExtractor(&fakeExtractor{}))
			got := r.Video("MAME", "pacman")
			want := tt.want
			if want != "" {
				want = filepath.Join(root, filepath.FromSlash(want))
			}
			if got != want {
				t.Errorf("Video = %q, want %q", got, want)
			}
		})
	}
}

func TestSentinelVideoAbsentReturnsEmpty(t *testing.T) {
	r := NewResolver(root, WithFS(fstest.MapFS{}), WithExtractor(&fakeExtractor{}))
	if got := r.Video(FrontendSystem, NoVideo); got != "" {
		t.Errorf("sentinel = %q, want empty", got)
	}
}

func TestCandidates(t *testing.T) {
	r := NewResolver(root, WithFS(fstest.MapFS{}), WithExtractor(&fakeExtractor{}))

	got := r.Candidates(Location{System: "MAME", Game: "pacman", Kind: KindVideo})
	want := []string{"Media/MAME/Video/pacman.flv", "Media/MAME/Video/pacman.mp4"}
	if len(got) != len(want) {
		t.Fatalf("Candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Candidates[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	got = r.Candidates(Location{System: "MAME", Game: "pacman", Kind: KindSpecial, Extension: ".png"})
	if len(got) != 1 || got[0] != "Media/MAME/Images/Special/pacman.png" {
		t.Errorf("extension filter = %v", got)
	}

	got = r.Candidates(Location{System: "MAME", Game: "pacman", Kind: KindComponent, Member: "artwork1"})
	if len(got) != 1 || got[0] != "Media/MAME/Themes/pacman.zip" {
		t.Errorf("component candidates = %v", got)
	}
}

func TestFixedPaths(t *testing.T) {
	r := NewResolver(root, WithFS(fstest.MapFS{}), WithExtractor(&fakeExtractor{}))
	if got, want := r.FrontendImage("Main Menu"), filepath.Join(root, "Media/Frontend/Images/Main Menu.png"); got != want {
		t.Errorf("FrontendImage = %q, want %q", got, want)
	}
	if got, want := r.SettingsPath("MAME"), filepath.Join(root, "Settings/MAME.ini"); got != want {
		t.Errorf("SettingsPath = %q, want %q", got, want)
	}
	if got, want := r.DatabasePath("MAME"), filepath.Join(root, "Databases/MAME/MAME.xml"); got != want {
		t.Errorf("DatabasePath = %q, want %q", got, want)
	}
}

func TestComponentNoAsset(t *testing.T) {
	ex := &fakeExtractor{members: map[string]map[string]bool{
		themePath("MAME", "pacman"):    {"artwork1": true},
		themePath("MAME", DefaultGame): {},
	}}
	r := NewResolver(root, WithFS(fstest.MapFS{}), WithExtractor(ex))

	if _, err := r.Component(context.Background(), "MAME", "pacman", "artwork1"); err != nil {
		t.Fatalf("Component artwork1: %v", err)
	}

	ex.calls = nil
	_, err := r.Component(context.Background(), "MAME", "pacman", "video")
	if !errors.Is(err, ErrNoAsset) {
		t.Fatalf("err = %v, want ErrNoAsset", err)
	}
	if !errors.Is(err, archive.ErrNotFound) {
		t.Errorf("err should wrap the last cause: %v", err)
	}
	if len(ex.calls) != 2 {
		t.Errorf("calls = %d, want 2", len(ex.calls))
	}
}

func TestWithDefault(t *testing.T) {
	var seen []string
	fail := errors.New("fail")
	err := WithDefault("pacman", func(g string) error {
		seen = append(seen, g)
		return fail
	})
	if !errors.Is(err, fail) {
		t.Errorf("err = %v", err)
	}
	if len(seen) != 2 || seen[1] != DefaultGame {
		t.Errorf("seen = %v, want [pacman default]", seen)
	}

	seen = nil
	_ = WithDefault(DefaultGame, func(g string) error {
		seen = append(seen, g)
		return fail
	})
	if len(seen) != 1 {
		t.Errorf("default retried: %v", seen)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindTheme, KindWheel, KindSpecial, KindVideo, KindComponent, KindFrontend} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("sound"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
