// Package validator provides small declarative validation rules and the
// ValidationErrors type used to report every failed rule at once.
//
// A Rule pairs a Check func with translation-friendly error metadata. Apply
// evaluates rules and aggregates failures into ValidationErrors, which
// implements error and matches ErrValidationFailed through errors.Is.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.RequiredString("name", name),
//	    validator.MaxGraphemes("name", name, 60),
//	    validator.ValidEmail("email", email),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for field, msgs := range verrs.Map() {
//	        // render per-field messages
//	    }
//	}
//
// Rules are stateless and safe for concurrent use.
package validator
