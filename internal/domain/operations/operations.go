// Package operations maps each filter operation to its command-line template,
// the arguments substituted into it and the name of the file it produces.
package operations

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/artshishkin/video-filter/internal/domain/naming"
	"github.com/artshishkin/video-filter/internal/types"
)

// Spec describes one entry of the dispatch table. Suffix is inserted before
// the extension of the input name; an empty Suffix means the operation
// reports its input name as its result.
type Spec struct {
	Op     types.Operation
	Key    string
	Suffix string
	args   func(tool, in, out string) []any
}

func toolInOut(tool, in, out string) []any { return []any{tool, in, out} }

var table = map[types.Operation]Spec{
	types.OpStabilize1: {
		Op:  types.OpStabilize1,
		Key: "stabilize_part1",
		args: func(tool, in, _ string) []any {
			return []any{tool, in}
		},
	},
	types.OpStabilize2: {Op: types.OpStabilize2, Key: "stabilize_part2", Suffix: "stab", args: toolInOut},
	types.OpAntiflicker: {
		Op:     types.OpAntiflicker,
		Key:    "antiflicker",
		Suffix: "antiflicker",
		args: func(tool, in, out string) []any {
			return []any{tool, in, in, out}
		},
	},
	types.OpCropVertical:   {Op: types.OpCropVertical, Key: "crop_vertical", Suffix: "cropv", args: toolInOut},
	types.OpCropHorizontal: {Op: types.OpCropHorizontal, Key: "crop_horizontal", Suffix: "croph", args: toolInOut},
	types.OpRotateCCW:      {Op: types.OpRotateCCW, Key: "rotate", Suffix: "rotate", args: toolInOut},
}

// Lookup returns the dispatch entry for op.
func Lookup(op types.Operation) (Spec, error) {
	spec, ok := table[op]
	if !ok {
		return Spec{}, fmt.Errorf("unknown operation %q", op)
	}
	return spec, nil
}

// OutputName returns the file the operation produces for input.
func (s Spec) OutputName(input string) string {
	if s.Suffix == "" {
		return input
	}
	return naming.AddOperationSuffix(input, s.Suffix)
}

// Arity is the number of values substituted into the operation's template.
func (s Spec) Arity() int { return len(s.args("", "", "")) }

// Templates holds one command-line template per operation.
type Templates map[types.Operation]string

// Invocation is a fully rendered command for one operation on one file.
type Invocation struct {
	Operation types.Operation
	Input     string
	Output    string
	Command   string
}

// ValidateTemplate reports whether tpl consumes exactly the values op supplies.
func ValidateTemplate(op types.Operation, tpl string) error {
	spec, err := Lookup(op)
	if err != nil {
		return err
	}
	if strings.TrimSpace(tpl) == "" {
		return errors.New("template is empty")
	}
	probe := spec.args("tool", "in", "out")
	rendered := fmt.Sprintf(tpl, probe...)
	if strings.Contains(rendered, "%!") && !strings.Contains(tpl, "%%!") {
		return fmt.Errorf("template must consume exactly %d values (%s), got %q",
			len(probe), describe(spec), rendered)
	}
	return nil
}

func describe(spec Spec) string {
	vals := spec.args("tool", "input", "output")
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.(string)
	}
	return strings.Join(parts, ", ")
}

// Command renders the template for op. Substituted paths are shell-quoted so
// the command line can be split back into the same argv.
func Command(op types.Operation, tpls Templates, toolPath, input string) (Invocation, error) {
	spec, err := Lookup(op)
	if err != nil {
		return Invocation{}, err
	}
	tpl := tpls[op]
	if err := ValidateTemplate(op, tpl); err != nil {
		return Invocation{}, fmt.Errorf("%s template %q: %w", op, spec.Key, err)
	}
	output := spec.OutputName(input)
	args := spec.args(
		shellquote.Join(toolPath),
		shellquote.Join(input),
		shellquote.Join(output),
	)
	return Invocation{
		Operation: op,
		Input:     input,
		Output:    output,
		Command:   fmt.Sprintf(tpl, args...),
	}, nil
}

// FinalOutput folds OutputName over seq, giving the name the whole chain ends with.
func FinalOutput(seq []types.Operation, input string) (string, error) {
	name := input
	for _, op := range seq {
		spec, err := Lookup(op)
		if err != nil {
			return "", err
		}
		name = spec.OutputName(name)
	}
	return name, nil
}
