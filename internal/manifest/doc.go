// Package manifest loads the license manifest: a JSON document listing the
// licenses shown on the generated page, one descriptor object per license.
//
// The top-level value is either an array of descriptors or an object whose
// values are descriptors. Document order is preserved in both cases. Every
// descriptor needs a string "short" field naming its text file
// (<short>.txt); all other fields are passed through untouched.
package manifest
