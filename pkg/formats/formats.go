// Package formats provides parsers for mesh source files.
//
// Wavefront OBJ is read either by the native parser in obj.go or by the
// g3n decoder in obj_g3n.go. Both produce the same OBJ value, with
// independent per-attribute indices at every face corner.
package formats
