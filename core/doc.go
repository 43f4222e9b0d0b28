// Package core provides low-level PDF syntax primitives and object types.
//
// The rebuilder never interprets a document's object graph, but it does need
// to read the cross-reference stream dictionary precisely. This package
// supplies just enough of the PDF grammar for that:
//
//   - [Object] and its implementations ([Null], [Bool], [Int], [Real],
//     [String], [Name], [Array], [Dict], [IndirectRef]).
//   - [Lexer], a tokenizer over an in-memory buffer that records the byte
//     position of every token.
//   - [Parser], which builds objects from tokens. [Parser.ParseDict] also
//     returns a [DictLayout] describing the byte span of each top-level
//     entry, so callers can drop selected keys while copying every other
//     byte of the dictionary verbatim.
//
// # Errors
//
// The error kinds shared across the module are defined here:
// [ErrStructural], [ErrUnsupported], [ErrMalformedDictionary] and [ErrIO].
// Every package wraps one of them, so callers can classify failures with
// errors.Is.
package core
