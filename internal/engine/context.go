package engine

import "github.com/vE5li/igt5/internal/data"

// Context bundles the hooks Instruction needs for concerns that live in
// packages the engine must not import directly — ioadapters (plain file
// I/O, the REPL line reader), serialize (the §6.2 text format and its
// JSON/YAML bridges) and the compile_file/compile_string/compile_module
// sub-compilation instructions (§4.7), whose hooks drive the
// tokenizer/template/parser/builder/pipeline packages directly rather
// than through any instruction of their own — §4.7's instruction
// categories name compile_file/compile_string/compile_module under
// "Sub-compilation" but no separate tokenize/parse/build instruction.
// Each field is nil-checked at the call site. A nil ReadFile/WriteFile
// falls back to the os package and a nil Serialize to Data.String; every
// other nil field is reported with KindExecute when a caller (e.g. a unit
// test) hasn't wired it up.
// cmd/igt5 is the only place that constructs a fully wired Context.
// #system/#silent run a subprocess directly via os/exec (runCommand in
// dispatch.go) rather than through a hook, since process execution has
// no format/config dependency that would force engine to avoid
// importing it directly.
type Context struct {
	Input         func() (string, error)
	ReadFile      func(path string) (string, error)
	WriteFile     func(path, content string) error
	ReadMap       func(path string) (data.Data, error)
	WriteMap      func(path string, value data.Data) error
	ReadList      func(path string) (data.Data, error)
	WriteList     func(path string, value data.Data) error
	Serialize     func(value data.Data) (string, error)
	Deserialize   func(text string) (data.Data, error)
	// The sub-compilation hooks take the live `#context` value as their
	// last argument (never the instruction's own formal parameters):
	// compile.rs's compile_file/compile_string/compile_module read
	// context.directory/context.parents from the ambient execution
	// context, not from anything the caller passed explicitly.
	CompileFile   func(config data.Data, path string, context data.Data) (data.Data, error)
	CompileString func(config data.Data, source string, context data.Data) (data.Data, error)
	// directory is nil when the caller omitted compile_module's optional
	// third parameter (§6.3's find_source_file then falls back to
	// context.directory).
	CompileModule func(config data.Data, name data.Data, directory *string, context data.Data) (data.Data, error)
	Pass          func(instance data.Data, currentPass *string, root, build, context *data.Data) (data.Data, error)
}

// Engine executes instructions (§4.7) against a fixed Context.
type Engine struct {
	ctx *Context
}

// New builds an Engine. A nil ctx is valid for tests that never exercise
// an I/O-bound instruction.
func New(ctx *Context) *Engine {
	if ctx == nil {
		ctx = &Context{}
	}
	return &Engine{ctx: ctx}
}
