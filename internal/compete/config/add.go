package config

import (
	"compete/internal/compete/template"
)

// Add is the `[add]` block used by `compete add`.
type Add struct {
	URL *template.Template
	// IsContest is a command whose success marks the argument as a contest,
	// if set.
	IsContest  []string
	TargetKind TargetKind
	BinName    *template.Template
	BinAlias   *template.Template
	BinSrcPath *template.Template // nil when unset
}

func decodeAdd(t *table) (*Add, error) {
	add := &Add{}

	var err error
	if add.URL, err = t.requiredTemplate("url", template.Compile); err != nil {
		return nil, err
	}
	if add.IsContest, _, err = t.strList("is-contest"); err != nil {
		return nil, err
	}
	if add.TargetKind, err = enumField(t, "target-kind", ParseTargetKind, TargetBin); err != nil {
		return nil, err
	}

	binName, err := t.requiredStr("bin-name")
	if err != nil {
		return nil, err
	}
	if add.BinName, err = template.Compile(binName); err != nil {
		return nil, t.invalid("bin-name", err)
	}

	binAlias, ok, err := t.str("bin-alias")
	if err != nil {
		return nil, err
	}
	if !ok {
		binAlias = binName
	}
	if add.BinAlias, err = template.Compile(binAlias); err != nil {
		return nil, t.invalid("bin-alias", err)
	}

	if add.BinSrcPath, _, err = t.template("bin-src-path", template.Compile); err != nil {
		return nil, err
	}

	t.finish()
	return add, nil
}
