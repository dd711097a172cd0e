// Package validate checks tool input at the boundary between callers and the
// tool handlers.
//
// # Argument contracts
//
// Every tool declares a Schema: an ordered list of Fields, each with a kind,
// whether it is required, and optional constraints (minimum length, URL
// format). Schema.Check turns an untyped argument bag into Args or returns an
// error wrapping ErrInvalidArguments that names every violation:
//
//	schema := validate.Schema{Fields: []validate.Field{
//	    {Name: "query", Kind: validate.String, Required: true},
//	}}
//	args, err := schema.Check(raw)
//
// Unknown keys are ignored. A nil argument bag is treated as empty.
//
// # Path and content limits
//
// NotePath rejects empty paths, null bytes and overlong paths before they
// reach the sandbox. Content enforces a size limit on written notes.
package validate
