package config

import (
	pkgerrors "compete/pkg/errors"

	"github.com/itchyny/gojq"
)

// OpenPath is one generated source file and its test suite.
type OpenPath struct {
	Src       string
	TestSuite string
}

// OpenCommands evaluates the `open` jq program against the package
// directory and the generated paths. The program may output either one
// command (`string[]`) or several (`string[][]`) per result. It returns nil
// when `open` is unset.
func (c *Config) OpenCommands(manifestDir string, paths []OpenPath) ([][]string, error) {
	if c.Open == "" {
		return nil, nil
	}

	query, err := gojq.Parse(c.Open)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.OpenScriptFailed, "could not parse `open`: %q", c.Open)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.OpenScriptFailed, "could not compile `open`: %q", c.Open)
	}

	items := make([]any, 0, len(paths))
	for _, p := range paths {
		items = append(items, map[string]any{"src": p.Src, "test_suite": p.TestSuite})
	}
	input := map[string]any{"manifest_dir": manifestDir, "paths": items}

	var commands [][]string
	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, pkgerrors.Wrapf(err, pkgerrors.OpenScriptFailed, "`open` failed")
		}
		cmds, err := asCommands(v)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmds...)
	}
	return commands, nil
}

func asCommands(v any) ([][]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, openTypeError(v)
	}
	if len(items) == 0 {
		return nil, nil
	}
	if _, nested := items[0].([]any); !nested {
		cmd, err := asStrings(items)
		if err != nil {
			return nil, err
		}
		return [][]string{cmd}, nil
	}
	out := make([][]string, 0, len(items))
	for _, item := range items {
		inner, ok := item.([]any)
		if !ok {
			return nil, openTypeError(v)
		}
		cmd, err := asStrings(inner)
		if err != nil {
			return nil, err
		}
		if len(cmd) > 0 {
			out = append(out, cmd)
		}
	}
	return out, nil
}

func asStrings(items []any) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, openTypeError(items)
		}
		out = append(out, s)
	}
	return out, nil
}

func openTypeError(v any) error {
	return pkgerrors.Newf(pkgerrors.OpenScriptFailed,
		"`open` must output `string[] | string[][]`, got %s", kindOf(v))
}
