package config

import (
	"compete/internal/compete/template"
)

// Submit is how `compete submit` obtains the code it sends: one of
// SubmitFile, SubmitCommand or SubmitTranspileCommand.
type Submit interface {
	// Language returns the judge's language ID, if one is configured.
	Language() (string, bool)
	isSubmit()
}

// SubmitFile submits the file the path template renders to.
type SubmitFile struct {
	Path       *template.Template
	LanguageID *string
}

// SubmitCommand submits the standard output of a command.
type SubmitCommand struct {
	Args       []*template.Template
	LanguageID *string
}

// SubmitTranspileCommand is SubmitCommand reached through the deprecated
// `submit.transpile` table. It behaves exactly like SubmitCommand.
type SubmitTranspileCommand struct {
	SubmitCommand
}

func (s SubmitFile) Language() (string, bool)    { return deref(s.LanguageID) }
func (s SubmitCommand) Language() (string, bool) { return deref(s.LanguageID) }

func (SubmitFile) isSubmit()    {}
func (SubmitCommand) isSubmit() {}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

// DefaultSubmit is used when `[submit]` is absent: submit the source file
// as is.
func DefaultSubmit() Submit {
	return SubmitFile{Path: template.MustCompile("{{ src_path }}")}
}

// RenderArgs renders every argument against vars.
func (s SubmitCommand) RenderArgs(vars map[string]any) ([]string, error) {
	args := make([]string, 0, len(s.Args))
	for _, arg := range s.Args {
		out, err := arg.Render(vars)
		if err != nil {
			return nil, err
		}
		args = append(args, out)
	}
	return args, nil
}

// Command returns the command to run for command-based strategies, whether
// configured in the current or the deprecated form.
func (c *Config) Command() (SubmitCommand, bool) {
	switch s := c.Submit.(type) {
	case SubmitCommand:
		return s, true
	case SubmitTranspileCommand:
		return s.SubmitCommand, true
	default:
		return SubmitCommand{}, false
	}
}

const transpileWarning = "`submit.transpile` is deprecated. use `submit.kind = \"command\"` instead"

// WarnDeprecations reports deprecated shapes the submit strategy was
// decoded from.
func (c *Config) WarnDeprecations(sink Warner) error {
	if _, ok := c.Submit.(SubmitTranspileCommand); ok {
		return sink.Warn(transpileWarning)
	}
	return nil
}

var submitCurrentShapes = []shape[Submit]{
	{name: "file", decode: func(t *table) (Submit, error) {
		if err := t.expectTag("kind", "file"); err != nil {
			return nil, err
		}
		s := SubmitFile{}
		var err error
		if s.Path, err = t.requiredTemplate("path", template.Compile); err != nil {
			return nil, err
		}
		if s.LanguageID, err = t.optStr("language-id"); err != nil {
			return nil, err
		}
		if err := t.strict(); err != nil {
			return nil, err
		}
		return s, nil
	}},
	{name: "command", decode: func(t *table) (Submit, error) {
		if err := t.expectTag("kind", "command"); err != nil {
			return nil, err
		}
		cmd, err := decodeSubmitCommand(t)
		if err != nil {
			return nil, err
		}
		return cmd, nil
	}},
}

func decodeSubmitCommand(t *table) (SubmitCommand, error) {
	s := SubmitCommand{}
	var err error
	if s.Args, err = t.templates("args", template.Compile); err != nil {
		return SubmitCommand{}, err
	}
	if s.LanguageID, err = t.optStr("language-id"); err != nil {
		return SubmitCommand{}, err
	}
	if err := t.strict(); err != nil {
		return SubmitCommand{}, err
	}
	return s, nil
}

var (
	submitCurrentForm = shape[Submit]{name: "current form", decode: func(t *table) (Submit, error) {
		return resolve(t, submitCurrentShapes, nil)
	}}
	submitTranspileForm = shape[Submit]{name: "transpile", decode: func(t *table) (Submit, error) {
		sub, err := t.requiredSub("transpile")
		if err != nil {
			return nil, err
		}
		if err := t.strict(); err != nil {
			return nil, err
		}
		if err := sub.expectTag("kind", "command"); err != nil {
			return nil, err
		}
		cmd, err := decodeSubmitCommand(sub)
		if err != nil {
			return nil, err
		}
		return SubmitTranspileCommand{SubmitCommand: cmd}, nil
	}}
)

func decodeSubmit(t *table) (Submit, error) {
	return resolve(t, submitCurrentShapes, []shape[Submit]{submitCurrentForm, submitTranspileForm})
}
