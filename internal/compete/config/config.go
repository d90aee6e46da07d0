// Package config locates, parses and validates compete.toml.
//
// Decoding walks the TOML document field by field. Plain blocks tolerate
// unknown keys and report them; polymorphic blocks (`new`, `submit` and the
// `kind`-tagged tables inside them) are resolved by their discriminator
// first and by an ordered list of candidate shapes otherwise. Every
// template-bearing string is compiled while decoding, so the returned
// Config only carries pre-validated templates.
package config

import (
	stderrors "errors"

	"compete/internal/compete/template"
	pkgerrors "compete/pkg/errors"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the conventional configuration file name.
const FileName = "compete.toml"

// Warner receives non-fatal diagnostics.
type Warner interface {
	Warn(msg string) error
}

// Config is a decoded compete.toml. It is not modified after Decode.
type Config struct {
	// TestSuite renders to the path of a problem's test suite file.
	TestSuite *template.Template
	// Open is a jq program producing the command(s) that open new files.
	Open string

	template *TemplateBlock

	New    NewStrategy
	Add    *Add
	Test   Test
	Submit Submit
}

// Decode parses text and returns the configuration together with the keys
// that were present but never consumed, as dotted paths.
func Decode(text string) (*Config, []string, error) {
	doc := make(map[string]any)
	if err := toml.Unmarshal([]byte(text), &doc); err != nil {
		var derr *toml.DecodeError
		if stderrors.As(err, &derr) {
			row, col := derr.Position()
			return nil, nil, pkgerrors.Wrapf(err, pkgerrors.ConfigParseFailed,
				"malformed document at line %d, column %d", row, col)
		}
		return nil, nil, pkgerrors.Wrapf(err, pkgerrors.ConfigParseFailed, "malformed document")
	}

	d := newDecoder()
	cfg, err := decodeConfig(d.root(doc))
	if err != nil {
		return nil, nil, err
	}
	return cfg, d.unused, nil
}

// Parse is Decode without the unused keys.
func Parse(text string) (*Config, error) {
	cfg, _, err := Decode(text)
	return cfg, err
}

func decodeConfig(t *table) (*Config, error) {
	cfg := &Config{}

	var err error
	if cfg.TestSuite, err = t.requiredTemplate("test-suite", template.CompileWithKebabCase); err != nil {
		return nil, err
	}
	if cfg.Open, _, err = t.str("open"); err != nil {
		return nil, err
	}

	if sub, ok, err := t.sub("template"); err != nil {
		return nil, err
	} else if ok {
		if cfg.template, err = decodeTemplateBlock(sub); err != nil {
			return nil, err
		}
	}

	cfg.New = NewNone{}
	if sub, ok, err := t.sub("new"); err != nil {
		return nil, err
	} else if ok {
		if cfg.New, err = decodeNew(sub); err != nil {
			return nil, err
		}
	}

	if sub, ok, err := t.sub("add"); err != nil {
		return nil, err
	} else if ok {
		if cfg.Add, err = decodeAdd(sub); err != nil {
			return nil, err
		}
	}

	cfg.Test = DefaultTest()
	if sub, ok, err := t.sub("test"); err != nil {
		return nil, err
	} else if ok {
		if cfg.Test, err = decodeTest(sub); err != nil {
			return nil, err
		}
	}

	cfg.Submit = DefaultSubmit()
	if sub, ok, err := t.sub("submit"); err != nil {
		return nil, err
	} else if ok {
		if cfg.Submit, err = decodeSubmit(sub); err != nil {
			return nil, err
		}
	}

	t.finish()
	return cfg, nil
}

// Test is the `[test]` block.
type Test struct {
	// Toolchain overrides the toolchain tests are built with, if set.
	Toolchain string
	Profile   TestProfile
}

// DefaultTest is used when `[test]` is absent.
func DefaultTest() Test {
	return Test{Profile: ProfileDev}
}

func decodeTest(t *table) (Test, error) {
	test := DefaultTest()

	var err error
	if test.Toolchain, _, err = t.str("toolchain"); err != nil {
		return Test{}, err
	}
	if test.Profile, err = enumField(t, "profile", ParseTestProfile, ProfileDev); err != nil {
		return Test{}, err
	}

	t.finish()
	return test, nil
}
