package config

import (
	"strings"

	pkgerrors "compete/pkg/errors"

	"github.com/pelletier/go-toml/v2"
)

// Fragment is a TOML document embedded as a string, e.g. the dependencies
// copied into a new package's Cargo.toml.
type Fragment struct {
	Text  string
	Table map[string]any
}

// ParseFragment parses text as a TOML document.
func ParseFragment(text string) (Fragment, error) {
	table := make(map[string]any)
	if err := toml.Unmarshal([]byte(text), &table); err != nil {
		return Fragment{}, pkgerrors.Wrapf(err, pkgerrors.InvalidFormat, "could not parse the TOML value %q", text)
	}
	return Fragment{Text: text, Table: table}, nil
}

// FragmentFromTable renders table back to TOML text.
func FragmentFromTable(table map[string]any) (Fragment, error) {
	if len(table) == 0 {
		return Fragment{Table: map[string]any{}}, nil
	}
	text, err := toml.Marshal(table)
	if err != nil {
		return Fragment{}, pkgerrors.Wrap(err, pkgerrors.InvalidFormat)
	}
	return Fragment{Text: string(text), Table: table}, nil
}

// IsEmpty reports whether the fragment has no entries.
func (f Fragment) IsEmpty() bool {
	return len(f.Table) == 0
}

func (f Fragment) String() string {
	return f.Text
}

func (t *table) fragment(key string) (Fragment, bool, error) {
	s, ok, err := t.str(key)
	if err != nil || !ok {
		return Fragment{Table: map[string]any{}}, false, err
	}
	frag, err := ParseFragment(s)
	if err != nil {
		return Fragment{}, false, t.invalid(key, err)
	}
	return frag, true, nil
}

// Platform is a judge platform, spelled in kebab-case.
type Platform string

const (
	PlatformAtCoder    Platform = "atcoder"
	PlatformCodeforces Platform = "codeforces"
	PlatformYukicoder  Platform = "yukicoder"
)

var platforms = []Platform{PlatformAtCoder, PlatformCodeforces, PlatformYukicoder}

// ParsePlatform matches s exactly against the platform names.
func ParsePlatform(s string) (Platform, error) {
	for _, p := range platforms {
		if string(p) == s {
			return p, nil
		}
	}
	return "", unknownVariant(s, platforms)
}

// Edition is a Rust edition used for generated packages.
type Edition string

const (
	Edition2015 Edition = "2015"
	Edition2018 Edition = "2018"
	Edition2021 Edition = "2021"
	Edition2024 Edition = "2024"
)

var editions = []Edition{Edition2015, Edition2018, Edition2021, Edition2024}

// ParseEdition matches s exactly against the known editions.
func ParseEdition(s string) (Edition, error) {
	for _, e := range editions {
		if string(e) == s {
			return e, nil
		}
	}
	return "", unknownVariant(s, editions)
}

// TargetKind is the kind of target `add` creates.
type TargetKind string

const (
	TargetBin        TargetKind = "bin"
	TargetExampleBin TargetKind = "example"
)

var targetKinds = []TargetKind{TargetBin, TargetExampleBin}

// ParseTargetKind matches s exactly against "bin" and "example".
func ParseTargetKind(s string) (TargetKind, error) {
	for _, k := range targetKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", unknownVariant(s, targetKinds)
}

// TestProfile is the build profile tests are run with.
type TestProfile string

const (
	ProfileDev     TestProfile = "dev"
	ProfileRelease TestProfile = "release"
)

var testProfiles = []TestProfile{ProfileDev, ProfileRelease}

// ParseTestProfile matches s exactly against "dev" and "release".
func ParseTestProfile(s string) (TestProfile, error) {
	for _, p := range testProfiles {
		if string(p) == s {
			return p, nil
		}
	}
	return "", unknownVariant(s, testProfiles)
}

func unknownVariant[T ~string](got string, expected []T) error {
	names := make([]string, 0, len(expected))
	for _, e := range expected {
		names = append(names, "`"+string(e)+"`")
	}
	return pkgerrors.Newf(pkgerrors.InvalidValue,
		"unknown variant `%s`, expected one of %s", got, strings.Join(names, ", "))
}

func enumField[T ~string](t *table, key string, parse func(string) (T, error), def T) (T, error) {
	var zero T
	s, ok, err := t.str(key)
	if err != nil {
		return zero, err
	}
	if !ok {
		return def, nil
	}
	v, err := parse(s)
	if err != nil {
		return zero, t.invalid(key, err)
	}
	return v, nil
}
