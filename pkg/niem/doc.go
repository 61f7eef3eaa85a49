// Package niem reads and writes FOIA annual report documents.
//
// Reports are NIEM-conformant XML. They are decoded into an ordered tree of
// Elements that keeps namespace prefixes and attribute order, so a document
// can be repaired in place and written back without disturbing data the
// repair does not touch. Report adds typed access to the filing agency, its
// sub-units and the statistics sections.
package niem
