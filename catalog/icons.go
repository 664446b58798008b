// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: catalog/icons.go
// Summary: Ordered icon resolver chain: override, theme image, glyph
// heuristic, first-letter fallback.

package catalog

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/charlievieth/fastwalk"
)

// IconResolver maps an entry to an icon. Resolvers run in order; the first
// one to report ok wins. The order is policy, not necessity, so callers can
// rearrange the chain.
type IconResolver interface {
	Name() string
	Resolve(entry AppEntry) (Icon, bool)
}

// DefaultResolvers returns the standard chain. With glyphsOnly set the theme
// image resolver is omitted so every entry renders as a glyph.
func DefaultResolvers(overrides IconOverrides, glyphsOnly bool) []IconResolver {
	chain := []IconResolver{&overrideResolver{overrides: overrides}}
	if !glyphsOnly {
		chain = append(chain, NewThemeResolver(defaultIconRoots()))
	}
	return append(chain, &keywordResolver{}, &letterResolver{})
}

type overrideResolver struct {
	overrides IconOverrides
}

func (r *overrideResolver) Name() string { return "override" }

func (r *overrideResolver) Resolve(entry AppEntry) (Icon, bool) {
	glyph, ok := r.overrides.Resolve(entry.ID, entry.Name)
	if !ok {
		return Icon{}, false
	}
	return Icon{Glyph: glyph}, true
}

// ThemeResolver locates an image file for the entry's Icon= name by walking
// the icon theme directories once and indexing what it finds. Candidates are
// ranked by extension and resolution so lookups are deterministic.
type ThemeResolver struct {
	roots []string

	once  sync.Once
	index map[string]themeCandidate
}

type themeCandidate struct {
	path string
	rank int
}

// NewThemeResolver builds a resolver over the given search roots. The index
// is populated lazily on first use.
func NewThemeResolver(roots []string) *ThemeResolver {
	return &ThemeResolver{roots: roots}
}

func (r *ThemeResolver) Name() string { return "theme" }

func (r *ThemeResolver) Resolve(entry AppEntry) (Icon, bool) {
	if entry.IconName == "" {
		return Icon{}, false
	}

	// Absolute icon paths bypass the theme index.
	if filepath.IsAbs(entry.IconName) {
		if _, err := os.Stat(entry.IconName); err == nil {
			return Icon{Path: entry.IconName}, true
		}
		return Icon{}, false
	}

	r.once.Do(r.buildIndex)

	key := strings.ToLower(iconStem(entry.IconName))
	if cand, ok := r.index[key]; ok {
		return Icon{Path: cand.path}, true
	}
	return Icon{}, false
}

// buildIndex walks every search root in parallel and keeps, per icon stem,
// the best-ranked candidate file.
func (r *ThemeResolver) buildIndex() {
	index := make(map[string]themeCandidate)
	var mu sync.Mutex

	conf := fastwalk.Config{Follow: false}
	for _, root := range r.roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		err := fastwalk.Walk(&conf, root, func(path string, d os.DirEntry, err error) error {
			if err != nil || d == nil || d.IsDir() {
				return nil
			}
			rank, ok := iconRank(path)
			if !ok {
				return nil
			}
			key := strings.ToLower(iconStem(d.Name()))
			mu.Lock()
			if prev, exists := index[key]; !exists || rank < prev.rank ||
				(rank == prev.rank && path < prev.path) {
				index[key] = themeCandidate{path: path, rank: rank}
			}
			mu.Unlock()
			return nil
		})
		if err != nil {
			log.Printf("Catalog: Icon theme walk failed for %s: %v", root, err)
		}
	}

	log.Printf("Catalog: Indexed %d theme icons from %d roots", len(index), len(r.roots))
	r.index = index
}

func defaultIconRoots() []string {
	roots := []string{
		"/usr/share/pixmaps",
		"/usr/share/icons/hicolor",
		"/usr/share/icons/Adwaita",
		"/usr/share/icons/breeze",
		"/usr/share/icons/Papirus",
	}
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, filepath.Join(home, ".local/share/icons"))
	}
	return roots
}

// iconExtRanks orders image formats by how reliably terminals render them.
var iconExtRanks = map[string]int{".png": 0, ".svg": 1, ".jpg": 2, ".ico": 3}

// iconSizeRanks prefers high resolutions for crisp downscaling.
var iconSizeRanks = []string{"256x256", "128x128", "64x64", "48x48", "scalable"}

// iconRank scores a candidate file; lower is better. Files with unknown
// extensions are not candidates.
func iconRank(path string) (int, bool) {
	extRank, ok := iconExtRanks[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return 0, false
	}
	sizeRank := len(iconSizeRanks)
	for i, size := range iconSizeRanks {
		if strings.Contains(path, string(filepath.Separator)+size+string(filepath.Separator)) {
			sizeRank = i
			break
		}
	}
	return sizeRank*len(iconExtRanks) + extRank, true
}

func iconStem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// keywordResolver picks a Nerd Font glyph by common app-name keywords found
// in the exec line, icon name, or display name.
type keywordResolver struct{}

func (r *keywordResolver) Name() string { return "keyword" }

func (r *keywordResolver) Resolve(entry AppEntry) (Icon, bool) {
	haystack := strings.ToLower(entry.Exec + " " + entry.IconName + " " + entry.Name)
	for _, kw := range keywordGlyphs {
		if strings.Contains(haystack, kw.keyword) {
			return Icon{Glyph: kw.glyph}, true
		}
	}
	return Icon{}, false
}

type keywordGlyph struct {
	keyword string
	glyph   string
}

// keywordGlyphs is checked in order; earlier entries win.
var keywordGlyphs = []keywordGlyph{
	{"firefox", ""},
	{"chrome", ""},
	{"brave", ""},
	{"code", ""},
	{"neovim", ""},
	{"vim", ""},
	{"terminal", ""},
	{"kitty", "🐱"},
	{"alacritty", ""},
	{"urxvt", ""},
	{"files", ""},
	{"folder", ""},
	{"nautilus", ""},
	{"thunar", ""},
	{"dolphin", ""},
	{"settings", ""},
	{"control", "🎚️"},
	{"qt", ""},
	{"rofi", ""},
	{"run", ""},
	{"vlc", ""},
	{"mpv", ""},
	{"obs", ""},
	{"monitor", ""},
	{"btop", ""},
	{"discord", "ﭮ"},
	{"spotify", ""},
	{"steam", ""},
	{"waypaper", ""},
	{"wallpaper", ""},
	{"nitrogen", ""},
	{"xournal", ""},
	{"draw", ""},
	{"paint", ""},
	{"gimp", ""},
	{"uuctl", ""},
	{"usb", ""},
}

// letterResolver is the terminal fallback: the upper-cased first letter of
// the display name. Always resolves.
type letterResolver struct{}

func (r *letterResolver) Name() string { return "letter" }

func (r *letterResolver) Resolve(entry AppEntry) (Icon, bool) {
	for _, c := range entry.Name {
		return Icon{Glyph: string(unicode.ToUpper(c))}, true
	}
	return Icon{Glyph: "?"}, true
}
