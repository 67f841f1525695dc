package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vE5li/igt5/internal/builder"
	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/engine"
	"github.com/vE5li/igt5/internal/ioadapters"
	"github.com/vE5li/igt5/internal/parser"
	"github.com/vE5li/igt5/internal/pipeline"
	"github.com/vE5li/igt5/internal/template"
	"github.com/vE5li/igt5/internal/tokenizer"
)

// sourceCompiler backs the engine.Context's compile_file/compile_string/
// compile_module hooks (§4.7's "Sub-compilation" category). Grounded on
// original_source's internal/execute/instruction/compile.rs: the shared
// compile() helper there runs tokenize -> parse -> build -> pipeline in
// sequence against Rust-native types, which is exactly what
// internal/tokenizer/internal/template/internal/parser/internal/builder/
// internal/pipeline give us directly — no #tokenize/#parse/#build
// instruction is involved, since §4.7/§6.4 never name one.
type sourceCompiler struct {
	eng *engine.Engine
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func indexKeyword(d data.Data, key string) (data.Data, bool) {
	m, ok := d.(data.Map)
	if !ok {
		return nil, false
	}
	return m.Index(data.Keyword(key))
}

// printStage mirrors compile.rs's print_stage: if the compiler config
// declares a `function.<prefix>` formatter, run it (against the compiler
// config itself as root, per the original); otherwise print the default
// "<stage>..." line.
func (c *sourceCompiler) printStage(compiler, build, context data.Data, prefix, stage string) error {
	if functions, ok := indexKeyword(compiler, "function"); ok {
		if body, ok := indexKeyword(functions, prefix); ok {
			root := compiler
			if _, err := engine.InvokeBody(body, nil, nil, &root, &build, &context, c.eng.Instruction); err != nil {
				return err
			}
			return nil
		}
	}
	fmt.Println(stage + "...")
	return nil
}

// compile is the shared helper behind CompileFile/CompileString/
// CompileModule, ported from compile()'s body: stamp parents/parameters/
// code/file/directory into a fresh context, then tokenize, parse, build
// and run the pipeline in order.
func (c *sourceCompiler) compile(context, compiler, parents data.Data, sourceString string, sourceFile *string, sourceDirectory string) (data.Data, error) {
	contextMap, ok := context.(data.Map)
	if !ok {
		return nil, cerrors.Message("context must be a map")
	}

	sourceFileData := data.Data(data.Keyword("none"))
	file := ""
	if sourceFile != nil {
		sourceFileData = data.String(*sourceFile)
		file = *sourceFile
	}

	var err error
	contextMap, err = contextMap.Overwrite(data.Keyword("parents"), parents)
	if err != nil {
		return nil, err
	}
	contextMap, err = contextMap.Overwrite(data.Keyword("parameters"), data.NewList())
	if err != nil {
		return nil, err
	}
	contextMap, err = contextMap.Overwrite(data.Keyword("code"), data.String(sourceString))
	if err != nil {
		return nil, err
	}
	contextMap, err = contextMap.Overwrite(data.Keyword("file"), sourceFileData)
	if err != nil {
		return nil, err
	}
	contextMap, err = contextMap.Overwrite(data.Keyword("directory"), data.String(sourceDirectory))
	if err != nil {
		return nil, err
	}
	context = contextMap

	compilerMap, ok := compiler.(data.Map)
	if !ok {
		return nil, cerrors.Message("compiler configuration must be a map")
	}

	buildMap := data.Data(data.NewMap())

	if err := c.printStage(compiler, buildMap, context, "tokenize", "tokenizing"); err != nil {
		return nil, err
	}
	noteHandler := func(keyword, rest string) { fmt.Printf("%s %s\n", keyword, rest) }
	tokenizerCfg, err := tokenizer.Configure(compilerMap, noteHandler)
	if err != nil {
		return nil, err
	}
	tokens, registry, err := tokenizerCfg.Tokenize(sourceString, file)
	if err != nil {
		return nil, err
	}

	if err := c.printStage(compiler, buildMap, context, "parse", "parsing"); err != nil {
		return nil, err
	}
	templates, err := template.Load(compilerMap, registry)
	if err != nil {
		return nil, err
	}
	filtered := tokenizer.FilterComments(tokens)
	decisions, err := parser.New(filtered, templates, registry).Parse()
	if err != nil {
		return nil, err
	}

	if err := c.printStage(compiler, buildMap, context, "build", "building"); err != nil {
		return nil, err
	}
	top, _, err := builder.New(tokens, decisions, templates).Build(true)
	if err != nil {
		return nil, err
	}

	return pipeline.Run(compiler, top, &buildMap, &context, c.eng.Instruction)
}

// CompileFile implements the compile_file instruction.
func (c *sourceCompiler) CompileFile(compiler data.Data, path string, context data.Data) (data.Data, error) {
	source, err := ioadapters.ReadFile(path)
	if err != nil {
		return nil, err
	}

	directory := ""
	if d, ok := indexKeyword(context, "directory"); ok {
		directory, _ = data.Literal(d)
	}

	parents := data.Data(data.NewList())
	if p, ok := indexKeyword(context, "parents"); ok {
		parents = p
	}

	return c.compile(context, compiler, parents, source, &path, directory)
}

// CompileString implements the compile_string instruction.
func (c *sourceCompiler) CompileString(compiler data.Data, source string, context data.Data) (data.Data, error) {
	directory := ""
	if d, ok := indexKeyword(context, "directory"); ok {
		directory, _ = data.Literal(d)
	}

	parents := data.Data(data.NewList())
	if p, ok := indexKeyword(context, "parents"); ok {
		parents = p
	}

	return c.compile(context, compiler, parents, source, nil, directory)
}

// findSourceFile implements find_source_file: a module "foo" resolves
// to either "<dir>foo/<submodule>.<ext>" (when file_settings.submodule
// is set and that file exists) or "<dir>foo.<ext>"; in the submodule
// case source_directory grows by "foo/" for any further nested lookups.
func findSourceFile(compiler data.Data, sourceDirectory *string, moduleName string) (string, error) {
	settings, ok := indexKeyword(compiler, "file_settings")
	if !ok {
		return "", cerrors.MissingEntry("file_settings")
	}
	extensionData, ok := indexKeyword(settings, "extention")
	if !ok {
		return "", cerrors.MissingEntry("extention")
	}
	extension, ok := data.Literal(extensionData)
	if !ok {
		return "", cerrors.Message("file_settings.extention must be a literal")
	}

	if submoduleData, ok := indexKeyword(settings, "submodule"); ok {
		submodule, ok := data.Literal(submoduleData)
		if ok {
			candidate := filepath.Join(*sourceDirectory, moduleName, submodule+"."+extension)
			if fileExists(candidate) {
				*sourceDirectory = filepath.Join(*sourceDirectory, moduleName)
				return candidate, nil
			}
		}
	}

	candidate := filepath.Join(*sourceDirectory, moduleName+"."+extension)
	if !fileExists(candidate) {
		return "", cerrors.MissingFile(candidate)
	}
	return candidate, nil
}

// CompileModule implements the compile_module instruction: locate
// "<name>.<ext>" (or "<name>/<submodule>.<ext>") under a configurable
// source directory, read it, and compile it with the module name
// appended to the parent chain (cycle/diagnostic bookkeeping).
func (c *sourceCompiler) CompileModule(compiler data.Data, name data.Data, directory *string, context data.Data) (data.Data, error) {
	moduleIdentifier, ok := name.(data.Identifier)
	if !ok {
		return nil, cerrors.Message("compile_module expects an identifier module name")
	}
	moduleName := string(moduleIdentifier)

	sourceDirectory := ""
	if directory != nil {
		sourceDirectory = *directory
	} else if d, ok := indexKeyword(context, "directory"); ok {
		sourceDirectory, _ = data.Literal(d)
	}

	sourceFile, err := findSourceFile(compiler, &sourceDirectory, moduleName)
	if err != nil {
		return nil, err
	}
	source, err := ioadapters.ReadFile(sourceFile)
	if err != nil {
		return nil, err
	}

	var parentItems []data.Data
	if p, ok := indexKeyword(context, "parents"); ok {
		if list, ok := p.(data.List); ok {
			parentItems = list.Items()
		}
	}
	parentItems = append(parentItems, data.Identifier(moduleName))
	parents := data.Data(data.NewList(parentItems...))

	return c.compile(context, compiler, parents, source, &sourceFile, sourceDirectory)
}
