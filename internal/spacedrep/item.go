package spacedrep

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Mode is the drill family an item belongs to.
type Mode string

const (
	ModeChord    Mode = "chord"
	ModeCadence  Mode = "cadence"
	ModeScale    Mode = "scale"
	ModeInterval Mode = "interval"
)

var modeOrder = map[Mode]int{
	ModeChord:    0,
	ModeCadence:  1,
	ModeScale:    2,
	ModeInterval: 3,
}

// Modes returns all drill modes in declaration order.
func Modes() []Mode {
	return []Mode{ModeChord, ModeCadence, ModeScale, ModeInterval}
}

// Valid reports whether m is one of the known drill modes.
func (m Mode) Valid() bool {
	_, ok := modeOrder[m]
	return ok
}

// ParseMode converts a user-supplied string into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", &InvalidInputError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q", s)}
	}
	return m, nil
}

// ItemID identifies one practice atom. It is comparable and is used
// directly as a map key. Key and Variant are optional; the empty string
// means the item is not key- or variant-sensitive.
type ItemID struct {
	Mode    Mode   `validate:"required,oneof=chord cadence scale interval"`
	Topic   string `validate:"required,validutf8,max=128"`
	Key     string `validate:"validutf8,max=64"`
	Variant string `validate:"validutf8,max=64"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Snapshots are JSON, which rewrites invalid bytes to U+FFFD.
	_ = validate.RegisterValidation("validutf8", func(fl validator.FieldLevel) bool {
		return utf8.ValidString(fl.Field().String())
	})
}

// Validate rejects identifiers that could not have come from a drill.
func (id ItemID) Validate() error {
	err := validate.Struct(id)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &InvalidInputError{
			Field:  strings.ToLower(fe.Field()),
			Reason: describeTag(fe),
		}
	}
	return &InvalidInputError{Field: "item", Reason: err.Error()}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "oneof":
		return fmt.Sprintf("unknown value %q", fe.Value())
	case "max":
		return fmt.Sprintf("longer than %s characters", fe.Param())
	case "validutf8":
		return "must be valid UTF-8"
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

// Compare orders identifiers by mode, then topic, key and variant.
// It returns -1, 0 or +1.
func (id ItemID) Compare(other ItemID) int {
	if a, b := modeRank(id.Mode), modeRank(other.Mode); a != b {
		if a < b {
			return -1
		}
		return 1
	}
	if c := strings.Compare(string(id.Mode), string(other.Mode)); c != 0 {
		return c
	}
	if c := strings.Compare(id.Topic, other.Topic); c != 0 {
		return c
	}
	if c := strings.Compare(id.Key, other.Key); c != 0 {
		return c
	}
	return strings.Compare(id.Variant, other.Variant)
}

// modeRank places unknown modes after the known ones, ordered by name.
func modeRank(m Mode) int {
	if r, ok := modeOrder[m]; ok {
		return r
	}
	return len(modeOrder)
}

func (id ItemID) String() string {
	var b strings.Builder
	b.WriteString(string(id.Mode))
	b.WriteByte('/')
	b.WriteString(id.Topic)
	if id.Key != "" {
		b.WriteByte('/')
		b.WriteString(id.Key)
	}
	if id.Variant != "" {
		b.WriteByte('/')
		if id.Key == "" {
			b.WriteByte('-')
			b.WriteByte('/')
		}
		b.WriteString(id.Variant)
	}
	return b.String()
}
