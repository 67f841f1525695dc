package tokenizer

// Registry is the VariantRegistry of §4.3: per-source metadata gathered
// during tokenization, consumed by the template validator and by later
// "is this word an identifier?" queries from the parser.
type Registry struct {
	HasCharacters bool
	HasComments   bool
	HasIntegers   bool
	HasFloats     bool
	HasStrings    bool
	HasNegatives  bool

	// OperatorNames and KeywordNames list every translate-target name the
	// operator/keyword tokenizers can produce, used to validate template
	// piece filters against "operators/keywords that can actually occur".
	OperatorNames []string
	KeywordNames  []string

	// IdentifierRules mirrors the identifier tokenizer's configured prefix
	// rules, for later "is this word an identifier" queries (§4.3).
	IdentifierRules IdentifierRules

	// HasIdentifierTokenizer records whether an identifier_tokenizer block
	// was configured at all, independent of whether it declares any prefix
	// rules (an identifier tokenizer with no prefixes is legal and matches
	// any unreserved word).
	HasIdentifierTokenizer bool
}

func newRegistry() *Registry {
	return &Registry{}
}

// HasOperator reports whether name was declared by the operator
// tokenizer's translate table.
func (r *Registry) HasOperator(name string) bool {
	for _, n := range r.OperatorNames {
		if n == name {
			return true
		}
	}
	return false
}

// HasKeyword reports whether name was declared by the keyword
// tokenizer's translate table.
func (r *Registry) HasKeyword(name string) bool {
	for _, n := range r.KeywordNames {
		if n == name {
			return true
		}
	}
	return false
}

// HasIdentifiers reports whether the tokenizer's rules can produce a plain
// Identifier token at all.
func (r *Registry) HasIdentifiers() bool {
	return r.HasIdentifierTokenizer
}

// HasTypeIdentifiers reports whether the identifier tokenizer declares any
// type_prefix rule, i.e. whether it can ever produce a TypeIdentifier token.
func (r *Registry) HasTypeIdentifiers() bool {
	return len(r.IdentifierRules.TypePrefix) > 0
}
