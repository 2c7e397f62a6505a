// Package labels contains the pure domain logic of the barcode label
// engine: scan payload encoding and validation, quantity expansion of a
// print request into ordered label units, the physical sheet geometry for
// the supported label stock, and pre-flight validation of print requests.
//
// Everything in this package is deterministic and free of I/O. Rendering
// and document assembly live in the infrastructure and application layers.
package labels
