package cmd

import (
	"os"

	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/engine"
	"github.com/vE5li/igt5/internal/ioadapters"
	"github.com/vE5li/igt5/internal/pipeline"
	"github.com/vE5li/igt5/internal/serialize"
)

func serializeHook(value data.Data) (string, error) {
	return serialize.Serialize(value), nil
}

// newEngine builds an Engine with every Context hook wired, the single
// place cmd/igt5 assembles the full runtime (internal/engine/context.go
// documents this as its intended construction site).
func newEngine() *engine.Engine {
	// sourceCompiler needs the *Engine it will itself be wired into
	// (to drive function.tokenize/parse/build progress hooks and the
	// pipeline's nested instruction calls); eng is assigned after
	// engine.New returns, but every reference below is late-bound (a
	// closure or a pointer-receiver method value), so the forward
	// reference resolves correctly before anything is ever invoked.
	compiler := &sourceCompiler{}
	var eng *engine.Engine
	lineReader := ioadapters.NewLineReader(os.Stdin)

	ctx := &engine.Context{
		Input:         lineReader.ReadLine,
		ReadFile:      ioadapters.ReadFile,
		WriteFile:     ioadapters.WriteFile,
		ReadMap:       ioadapters.ReadMap,
		WriteMap:      ioadapters.WriteMap,
		ReadList:      ioadapters.ReadList,
		WriteList:     ioadapters.WriteList,
		Serialize:     serializeHook,
		Deserialize:   serialize.Deserialize,
		CompileFile:   compiler.CompileFile,
		CompileString: compiler.CompileString,
		CompileModule: compiler.CompileModule,
		Pass: func(instance data.Data, currentPass *string, root, build, context *data.Data) (data.Data, error) {
			return pipeline.Pass(instance, currentPass, root, build, context, eng.Instruction)
		},
	}
	eng = engine.New(ctx)
	compiler.eng = eng
	return eng
}

// invokeMain looks up function.main in project (§6.1's entry point,
// path: keyword `function` -> keyword `main`) and runs it with arguments
// wrapped as Data strings, the remaining argv after flag parsing.
func invokeMain(eng *engine.Engine, project data.Data, arguments []string) (data.Data, error) {
	body, ok := indexKeyword(project, "function")
	if !ok {
		return nil, cerrors.MissingEntry("function")
	}
	mainBody, ok := indexKeyword(body, "main")
	if !ok {
		return nil, cerrors.MissingEntry("main")
	}

	parameters := make([]data.Data, len(arguments))
	for i, argument := range arguments {
		parameters[i] = data.String(argument)
	}

	context := data.Data(data.NewMap())
	build := data.Data(data.NewMap())
	var currentPass *string
	return engine.InvokeBody(mainBody, parameters, currentPass, &project, &build, &context, eng.Instruction)
}
