// Package execctx activates an isolated execution context for the delegated
// server.
//
// A context is a virtualenv-style directory with a bin (Scripts on Windows)
// subdirectory. Activation mirrors what an activate script does: it records the
// directory in VIRTUAL_ENV, prepends the bin directory to PATH and clears
// PYTHONHOME. Unlike a sourced script the change is scoped: the returned
// Activation remembers the previous values and Restore puts them back.
//
//	act, err := execctx.Activate("venv")
//	if err != nil {
//	    return err
//	}
//	defer act.Restore()
package execctx
