package prototypes

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prototable/internal/decode"
	"github.com/vk/prototable/internal/dynval"
	"github.com/vk/prototable/internal/variant"
)

// Sound is a sum-typed record: a definition may be a bare filename string, a
// table of variations, or a single-file table. There is no discriminator
// key, so the variant is picked from the shape alone.
type Sound struct {
	Filename   string
	Volume     float64
	Variations []*SoundFile
}

// SoundFile is one concrete audio file within a sound.
type SoundFile struct {
	Filename string
	Volume   float64
}

var soundFileSchema = decode.NewSchema("sound file", []decode.Field[SoundFile]{
	{Key: "filename", Required: true, Bind: bindString(func(f *SoundFile) *string { return &f.Filename })},
	{Key: "volume", Default: defNum(1), Bind: bindFloatBetween(func(f *SoundFile) *float64 { return &f.Volume }, 0, 2)},
})

var soundSingleSchema = decode.NewSchema("sound", []decode.Field[Sound]{
	{Key: "filename", Required: true, Bind: bindString(func(s *Sound) *string { return &s.Filename })},
	{Key: "volume", Default: defNum(1), Bind: bindFloatBetween(func(s *Sound) *float64 { return &s.Volume }, 0, 2)},
})

// soundDispatcher's case order is load-bearing: a table carrying both
// "variations" and "filename" must decode as the variations form.
var soundDispatcher = variant.New[*Sound]("sound",
	variant.Case[*Sound]{
		Name: "bare filename",
		When: func(v cty.Value) bool { return dynval.KindOf(v) == dynval.KindString },
		Decode: func(v cty.Value, _ *decode.Context) (*Sound, error) {
			filename, err := dynval.String(v)
			if err != nil {
				return nil, err
			}
			return &Sound{Filename: filename, Volume: 1}, nil
		},
	},
	variant.Case[*Sound]{
		Name: "variations",
		When: func(v cty.Value) bool { return dynval.Has(v, "variations") },
		Decode: func(v cty.Value, ctx *decode.Context) (*Sound, error) {
			elems, err := dynval.Elements(dynval.Attr(v, "variations"))
			if err != nil {
				return nil, err
			}
			sound := &Sound{Volume: 1}
			for _, elem := range elems {
				file, err := soundFileSchema.Decode(elem, ctx)
				if err != nil {
					return nil, err
				}
				sound.Variations = append(sound.Variations, file)
			}
			return sound, nil
		},
	},
	variant.Case[*Sound]{
		Name: "single file",
		When: func(v cty.Value) bool { return dynval.Has(v, "filename") },
		Decode: func(v cty.Value, ctx *decode.Context) (*Sound, error) {
			return soundSingleSchema.Decode(v, ctx)
		},
	},
)

// DecodeSound decodes one sound value of any of its shapes.
func DecodeSound(v cty.Value, ctx *decode.Context) (*Sound, error) {
	return soundDispatcher.Decode(v, ctx)
}
