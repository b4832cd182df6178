// Package dict is the write-once, id-keyed character store (spec.md §4.2):
// a Dictionary binds CharacterIds to Shapes, Bitmaps, Sounds, Sprites
// (nested Timelines), Buttons, and DynamicText entries.
package dict

import (
	"fmt"
	"sort"

	"filmstrip/button"
	"filmstrip/geom"
	"filmstrip/shape"
	"filmstrip/timeline"
)

// Bitmap is a decoded or still-encoded image character. Image codecs are
// used opaquely (spec.md §1): Data holds whatever bytes the document
// assembler needs to build a data-URL <image>, and MimeType says how to
// label them.
type Bitmap struct {
	Width, Height int
	MimeType      string
	Data          []byte
}

// Sound is a one-shot sound character, referenced by StartSound events.
type Sound struct {
	Format     timeline.AudioFormat
	SampleRate uint32
	Channels   uint8
	Data       []byte
}

// DynamicText is a text character: bounds, the initial string, and its
// fill color. The ratio/anchor open questions from spec.md §9 don't apply
// here; this type just carries what the format gives it through to the
// document assembler.
type DynamicText struct {
	Bounds geom.Rect
	Text   string
	Color  geom.RGBA
}

// Kind tags which field of a Character is populated.
type Kind int

const (
	KindShape Kind = iota
	KindBitmap
	KindSound
	KindSprite
	KindButton
	KindDynamicText
)

// Character is the closed tagged union spec.md §3 calls for: exactly one
// of the typed fields is meaningful, selected by Kind.
type Character struct {
	Kind Kind

	Shape       shape.Shape
	Bitmap      Bitmap
	Sound       Sound
	Sprite      *timeline.Timeline
	Button      button.Button
	DynamicText DynamicText
}

// Dictionary is the write-once CharacterId → Character store.
type Dictionary struct {
	characters map[geom.CharacterID]Character
}

// New returns an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{characters: map[geom.CharacterID]Character{}}
}

// Define inserts a character, failing loudly if id is already bound
// (spec.md §4.2: "Write-once discipline yields referential transparency").
func (d *Dictionary) Define(id geom.CharacterID, c Character) error {
	if _, exists := d.characters[id]; exists {
		return fmt.Errorf("dict: character %d already defined", id)
	}
	d.characters[id] = c
	return nil
}

// Get returns the character bound to id, or false if none is (callers are
// expected to log a warning and skip, per spec.md §4.2).
func (d *Dictionary) Get(id geom.CharacterID) (Character, bool) {
	c, ok := d.characters[id]
	return c, ok
}

// Exists implements timeline.CharacterLookup, letting the timeline builder
// validate StartSound references without an import cycle.
func (d *Dictionary) Exists(id geom.CharacterID) bool {
	_, ok := d.characters[id]
	return ok
}

// Ids returns the dictionary's character ids in ascending order, for
// deterministic emission (spec.md §4.2, §5).
func (d *Dictionary) Ids() []geom.CharacterID {
	ids := make([]geom.CharacterID, 0, len(d.characters))
	for id := range d.characters {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
