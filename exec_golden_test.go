package main

import "testing"

func TestScriptExecution(t *testing.T) {
	cases := []scriptCase{
		newScriptCase("return literal").apply(
			withLine(`return 42`),
			expectValue(IntValue(42)),
		),
		newScriptCase("assignment then return").apply(
			withLine(`x = 1`),
			withLine(`x = x + 1`),
			withLine(`return x`),
			expectValue(IntValue(2)),
		),
		newScriptCase("if/else picks the live branch").apply(
			withLine(`x = 0`),
			withLine(`if 1 == 2`),
			withLine(`x = 100`),
			withLine(`else`),
			withLine(`x = 200`),
			withLine(`endif`),
			withLine(`return x`),
			expectValue(IntValue(200)),
		),
		newScriptCase("while loop counts to three").apply(
			withLine(`i = 0`),
			withLine(`while i < 3`),
			withLine(`i = i + 1`),
			withLine(`endloop`),
			withLine(`return i`),
			expectValue(IntValue(3)),
		),
		newScriptCase("break exits a loop early").apply(
			withLine(`i = 0`),
			withLine(`loop`),
			withLine(`i = i + 1`),
			withLine(`if i == 2`),
			withLine(`break`),
			withLine(`endif`),
			withLine(`endloop`),
			withLine(`return i`),
			expectValue(IntValue(2)),
		),
		newScriptCase("positional argument").apply(
			withArg(IntValue(7)),
			withLine(`return $1 * 2`),
			expectValue(IntValue(14)),
		),
		newScriptCase("undefined variable is a script error").apply(
			withLine(`return undefinedName`),
			expectSeverity(SevScriptError),
		),
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, c.run)
	}
}
