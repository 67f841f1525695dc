package engine

import (
	"fmt"

	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
)

// shellLoop implements #shell (§4.7): an interactive instruction prompt,
// distinct from #system/#silent's single subprocess call. Ported from
// shell() in original_source's execute/instruction/shell.rs: each line of
// input is wrapped as `[<line>]`, deserialized into a one-item-per-word
// instruction form, and dispatched against the live scope, with "exit"
// ending the loop and the resulting last value echoed back.
func (e *Engine) shellLoop(last *data.Data, currentPass *string, scopes Scopes) error {
	if e.ctx.Input == nil {
		return notConfigured("shell")
	}
	if e.ctx.Deserialize == nil {
		return notConfigured("shell")
	}

	for {
		line, err := e.ctx.Input()
		if err != nil {
			return nil
		}

		parsed, err := e.ctx.Deserialize("[" + line + "]")
		if err != nil {
			e.printShellError(err)
			continue
		}

		items, ok := parsed.(data.List)
		if !ok {
			e.printShellError(cerrors.Message("shell expected a list of words"))
			continue
		}

		words := items.Items()
		if len(words) == 0 {
			e.printShellError(cerrors.Message("shell expected instruction"))
			continue
		}

		instructionName, ok := shellInstructionName(words[0])
		if !ok {
			e.printShellError(cerrors.Message("shell expected instruction"))
			continue
		}
		if instructionName == "exit" {
			return nil
		}

		stack := NewStack(words[1:])
		parameters, err := stack.Parameters(*last, scopes)
		if err != nil {
			e.printShellError(err)
			continue
		}

		_, err = e.Instruction(instructionName, parameters, stack, last, currentPass, scopes)
		if err != nil {
			e.printShellError(err)
			continue
		}

		if *last != nil {
			e.printShellResult(*last)
		}
	}
}

func shellInstructionName(word data.Data) (string, bool) {
	switch v := word.(type) {
	case data.Identifier:
		return string(v), true
	case data.Keyword:
		return string(v), true
	default:
		return "", false
	}
}

func (e *Engine) printShellError(err error) {
	fmt.Println(err.Error())
}

func (e *Engine) printShellResult(value data.Data) {
	text := value.String()
	if e.ctx.Serialize != nil {
		if serialized, err := e.ctx.Serialize(value); err == nil {
			text = serialized
		}
	}
	fmt.Println("$ " + text)
}
