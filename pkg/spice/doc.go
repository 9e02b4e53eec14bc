// Package spice binds the NASA/NAIF CSPICE toolkit.
//
// The toolkit keeps process-wide state (the kernel pool, the loaded files and
// an error flag) and is not safe for concurrent use, so every call goes
// through a Token obtained from the Library's gate. A token exposes two views
// of the same entry points:
//
//   - Raw marshals arguments, calls the entry point and decodes its outputs.
//     It never looks at the native error flag.
//   - Checked runs each call under the error protocol (erract RETURN, call,
//     failed, getmsg SHORT/LONG, reset) and reports native failures as *Error.
//
// Both are generated from signatures.yaml by cmd/spicegen.
package spice

//go:generate go run ../../cmd/spicegen --schema signatures.yaml --out .
