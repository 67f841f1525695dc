package engine

// Description records one instruction's calling convention (§4.7):
// whether it may be called by name through `invoke` (Invokable —
// `input`/`shell`/`iterate`/`for`/`if`/`while`/`else`/`end`/`break`/
// `continue` are not; the flow-control ones are consumed directly by the
// flow-control plumbing in stack.go), whether it reads raw follow-up parameter
// expressions instead of resolved values (Conditional — only `while`/
// `else`), whether its last formal parameter absorbs every remaining
// argument (Variadic), and its formal parameter filters (Parameters).
// Ported from instruction/description.rs's INSTRUCTIONS table.
type Description struct {
	Invokable   bool
	Conditional bool
	Variadic    bool
	Parameters  []Parameter
}

func describe(invokable, conditional, variadic bool, parameters ...Parameter) *Description {
	return &Description{Invokable: invokable, Conditional: conditional, Variadic: variadic, Parameters: parameters}
}

// instructions is the full §4 instruction catalogue.
var instructions = map[string]*Description{
	"map":        describe(true, false, true, any()),
	"list":       describe(true, false, true, any()),
	"path":       describe(true, false, true, of(TypeLocation), of(TypeLocation)),
	"string":     describe(true, false, true, any()),
	"identifier": describe(true, false, true, any()),
	"keyword":    describe(true, false, true, any()),
	"float":      describe(true, false, false, of(TypeNumber)),
	"integer":    describe(true, false, false, of(TypeNumber)),
	"character":  describe(true, false, false, of(TypeNumber)),
	"boolean":    describe(true, false, true, of(TypeKeyword), any()),
	"type":       describe(true, false, false, any()),
	"length":     describe(true, false, false, of(TypeContainer)),
	"random":     describe(true, false, false, of(TypeNumber), of(TypeNumber)),
	"time":       describe(true, false, false),
	"input":      describe(false, false, false),
	"shell":      describe(false, false, false),
	"terminate":  describe(true, false, false),
	"return":     describe(true, false, false, any()),
	"remember":   describe(true, false, false, any()),
	"fuze":       describe(true, false, true, any()),
	"range":      describe(true, false, true, any()),
	"fill":       describe(true, false, false, any(), of(TypeLiteral), of(TypeInteger, TypeCharacter)),
	"fill_back":  describe(true, false, false, any(), of(TypeLiteral), of(TypeInteger, TypeCharacter)),
	"print":      describe(true, false, true, any()),
	"print_line": describe(true, false, true, any()),
	"error":      describe(true, false, true, any()),
	"ensure":     describe(true, false, true, of(TypeKeyword), any()),

	"add":      describe(true, false, true, of(TypeNumber), of(TypeNumber), of(TypeNumber)),
	"subtract": describe(true, false, true, of(TypeNumber), of(TypeNumber), of(TypeNumber)),
	"multiply": describe(true, false, true, of(TypeNumber), of(TypeNumber), of(TypeNumber)),
	"divide":   describe(true, false, true, of(TypeNumber), of(TypeNumber), of(TypeNumber)),
	"modulo":   describe(true, false, false, of(TypeNumber), of(TypeNumber)),
	"logarithm": describe(true, false, false, of(TypeNumber), of(TypeNumber)),
	"power":      describe(true, false, false, of(TypeNumber), of(TypeNumber)),
	"square_root": describe(true, false, false, of(TypeNumber)),
	"negate":      describe(true, false, false, of(TypeNumber)),
	"absolute":    describe(true, false, false, of(TypeNumber)),
	"ceiling":     describe(true, false, false, of(TypeNumber)),
	"round":       describe(true, false, false, of(TypeNumber)),
	"floor":       describe(true, false, false, of(TypeNumber)),
	"sine":        describe(true, false, false, of(TypeNumber)),
	"cosine":      describe(true, false, false, of(TypeNumber)),
	"tangent":     describe(true, false, false, of(TypeNumber)),

	"not": describe(true, false, false, of(TypeInteger, TypeCharacter, TypeBoolean)),
	"and": describe(true, false, true, of(TypeInteger, TypeCharacter, TypeBoolean), of(TypeInteger, TypeCharacter, TypeBoolean), of(TypeInteger, TypeCharacter, TypeBoolean)),
	"or":  describe(true, false, true, of(TypeInteger, TypeCharacter, TypeBoolean), of(TypeInteger, TypeCharacter, TypeBoolean), of(TypeInteger, TypeCharacter, TypeBoolean)),
	"xor": describe(true, false, true, of(TypeInteger, TypeCharacter, TypeBoolean), of(TypeInteger, TypeCharacter, TypeBoolean), of(TypeInteger, TypeCharacter, TypeBoolean)),

	"shift_left":  describe(true, false, false, of(TypeInteger, TypeCharacter), of(TypeInteger, TypeCharacter)),
	"shift_right": describe(true, false, false, of(TypeInteger, TypeCharacter), of(TypeInteger, TypeCharacter)),

	"empty": describe(true, false, false, of(TypeMap, TypeList, TypeString)),
	"flip":  describe(true, false, false, of(TypeContainer)),
	"join":  describe(true, false, false, of(TypeList), of(TypeLiteral)),
	"split": describe(true, false, false, of(TypeContainer), any(), of(TypeBoolean)),

	"uppercase": describe(true, false, true, of(TypeLiteral)),
	"lowercase": describe(true, false, true, of(TypeLiteral)),

	"insert":    describe(true, false, false, of(TypeContainer), of(TypeSelector), any()),
	"overwrite": describe(true, false, false, of(TypeContainer), of(TypeSelector), any()),
	"move":      describe(true, false, false, of(TypeContainer), of(TypeSelector), of(TypeSelector)),
	"push":      describe(true, false, false, of(TypeContainer), any()),
	"append":    describe(true, false, false, of(TypeContainer), any()),
	"remove":    describe(true, false, false, of(TypeContainer), of(TypeSelector)),

	"system": describe(true, false, true, of(TypeString), of(TypeString)),
	"silent": describe(true, false, true, of(TypeString), of(TypeString)),

	"keys":   describe(true, false, false, of(TypeMap)),
	"values": describe(true, false, false, of(TypeContainer)),
	"pairs":  describe(true, false, false, of(TypeContainer)),

	"serialize":   describe(true, false, false, any()),
	"deserialize": describe(true, false, false, of(TypeString)),

	"read_file":  describe(true, false, false, of(TypeString)),
	"write_file": describe(true, false, false, of(TypeString), of(TypeString)),
	"read_map":   describe(true, false, false, of(TypeString)),
	"write_map":  describe(true, false, false, of(TypeString), of(TypeMap)),
	"read_list":  describe(true, false, false, of(TypeString)),
	"write_list": describe(true, false, false, of(TypeString), of(TypeList)),

	"modify": describe(true, false, true, of(TypeKey, TypePath), any(), any()),

	"call":      describe(true, false, true, of(TypeList), any()),
	"call_list": describe(true, false, true, of(TypeList), of(TypeList)),
	"invoke":    describe(true, false, false, of(TypeKeyword), of(TypeList)),

	"compile_file":   describe(true, false, true, of(TypeMap), of(TypeString)),
	"compile_string": describe(true, false, false, of(TypeMap), of(TypeString)),
	"compile_module": describe(true, false, true, of(TypeMap), of(TypeIdentifier), of(TypeString)),

	"pass":     describe(true, false, true, any(), any()),
	"new_pass": describe(true, false, true, of(TypeIdentifier), any(), any()),

	"merge": describe(true, false, true, of(TypeContainer), of(TypeContainer), of(TypeContainer)),
	"slice": describe(true, false, false, of(TypeContainer), of(TypeSelector), of(TypeSelector)),
	"index": describe(true, false, false, of(TypeContainer), of(TypeSelector)),

	"resolve":  describe(true, false, false, of(TypeSelector, TypePath)),
	"replace":  describe(true, false, false, of(TypeContainer), any(), any()),
	"position": describe(true, false, false, of(TypeContainer), any()),

	"iterate": describe(false, false, false, of(TypeContainer)),
	"for":      describe(false, false, false, of(TypeInteger), of(TypeInteger)),
	"if":       describe(false, false, true, of(TypeKeyword), any()),
	"while":    describe(false, true, true, of(TypeKeyword), any()),
	"else":     describe(false, true, true, any()),
	"end":      describe(false, false, true, of(TypeKeyword)),
	"break":    describe(false, false, true, of(TypeKeyword)),
	"continue": describe(false, false, true, of(TypeKeyword)),
}
