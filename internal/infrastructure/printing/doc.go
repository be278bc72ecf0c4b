// Package printing implements the receipt rendering engine: a deterministic
// interpreter that turns a declarative receipt template plus company and
// transaction data into a paginated, styled document tree.
//
// The engine is a pure, single-pass transformation with no I/O and no shared
// mutable state; a Composer may be used concurrently for independent renders.
//
// Main pieces:
//   - Resolver: color algebra and symbolic style lookup tables shared by all
//     section renderers
//   - section renderers: one per section type, dispatched through a strategy
//     table keyed by the closed SectionType enum
//   - Composer: assembles rendered sections, in template order, into a
//     Document at a fixed receipt page width
//   - HTMLWriter: serializes a Document to self-contained HTML for preview
//
// Rendering never fails: malformed or missing input degrades to documented
// defaults so a print job is never aborted by bad template data.
package printing
