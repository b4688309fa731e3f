// Package member defines the validated member record exchanged by the roster
// import and export engine.
//
// Every field is a small value type that can only be obtained through its
// constructor (NewName, NewEmail, ...). Constructors enforce the type's own
// invariants, which are intentionally independent from the file-level rules
// applied by the importer: a value can pass the import rules and still be
// rejected here, in which case the whole record is discarded.
//
// Records are immutable once built. Accessors return copies where the
// underlying data is mutable (tags).
package member
