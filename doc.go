/*
Command mightemacs is a modal, buffer-oriented text-editing engine with an
embedded scripting language.

Buffers hold a doubly-linked list of lines; a buffer whose name begins with
the macro sigil ('&') additionally holds a script body, pre-processed once
into a flat loop-block table and run by a level-stack interpreter rather
than a tree walker. Commands, functions, pseudo-commands, macros, and
aliases share one name-keyed exec table, so scripts call built-ins and
user-defined macros through the same path.

A pattern compiles to either a Boyer-Moore search (plain text) or a small
recursive-descent regular-expression program, scanned forward or backward
over a buffer linearized into one byte slice with its line boundaries
recorded alongside. Replace reuses the same compiled match to substitute
across a buffer or a bounded region.

Every operation returns a Status carrying a severity (Success through
Panic/UserExit/ScriptExit/HelpExit) rather than a bare error, so callers
can propagate "worse of two outcomes" without losing the first message.

This file and main.go are the process entry point: a non-interactive
driver that configures an Editor from command-line switches, runs startup
and -exec script lines, reads files into buffers, and exits. It does not
implement a terminal UI; an interactive front end would be built on top of
the same Editor type.
*/
package main
