// Package model provides the format-independent element tree produced by the
// document loaders.
//
// Every loader in this module (OOXML, legacy binary, plain text) emits the
// same small, closed set of element types, so converters can render a
// [Document] without knowing where it came from.
//
// # Document Structure
//
// The [Document] type holds a title and the elements in reading order:
//
//	doc := model.NewDocument()
//	doc.Title = "Quarterly Report"
//	doc.Add(model.NewHeading("Quarterly Report", 1))
//
// Elements are appended, never re-sorted or mutated after creation.
//
// # Elements
//
// All content implements the [Element] interface. The concrete types are:
//
//   - [Text] - an immutable run of text
//   - [Paragraph] - an ordered list of [Text] runs
//   - [Heading] - heading text with a level clamped to 1-6
//   - [Table] - rows of [TableCell] values
//   - [Image] - raw media bytes with a format tag and pixel size
//
// [ElementTypeList] is reserved; no loader produces list elements yet.
//
// The set is closed: [Element] carries an unexported method, so a type switch
// over the five concrete types is exhaustive.
//
// # Errors
//
// Load failures wrap one of [ErrNotFound], [ErrUnsupportedFormat],
// [ErrMalformedInput] or [ErrExternalTool]. Problems confined to a single node
// are reported as a [Warning] and never abort a load.
package model
