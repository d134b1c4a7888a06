package main

// registerBuiltinCommands seeds the shared exec table (bufreg.go's
// Registry.exec) with the fixed set of built-in commands this engine's
// variable writers and scripts dispatch to by name, grounded in spec.md
// §4.I's "renames current buffer via the rename command" — the one
// built-in the variable-writer table names explicitly rather than
// implementing inline.
func registerBuiltinCommands(r *Registry) {
	r.exec["rename"] = &ExecEntry{
		Name: "rename",
		Kind: ExecCommand,
		Fn:   cmdRename,
	}
}

// cmdRename renames the current buffer to args.Args[0], or
// auto-uniquifies it if called with no arguments.
func cmdRename(e *Editor, args *CallArgs) (Value, Status) {
	requested := ""
	if len(args.Args) > 0 {
		requested = args.Args[0].CoerceStr()
	}
	if e.CurBuf == nil {
		return Nil, ScriptErrorf("no current buffer")
	}
	if err := e.Reg.Rename(e.CurBuf, requested); err != nil {
		if st, ok := err.(Status); ok {
			return Nil, st
		}
		return Nil, WrapError(err)
	}
	return StringValue(e.CurBuf.name), OK
}
