// Package model provides the in-memory tree for word-processing documents.
//
// A [Document] is an ordered sequence of [Block] values. The concrete block
// types are:
//
//   - [Heading] - title or section heading text (level 0 is the Title style)
//   - [Paragraph] - an ordered sequence of [Run] values
//
// Blocks and runs keep their append order; that order is the visual order of
// the serialized document:
//
//	doc := model.NewDocument()
//	doc.AddHeading("生物知识测试", 0)
//	p := doc.AddParagraph()
//	p.AddRun("光合作用", model.HighlightYellow)
//	p.AddText("是植物将光能转化为化学能的过程。")
//
// Once a document has been written it should be frozen with
// [Document.Freeze]; further appends panic.
package model
