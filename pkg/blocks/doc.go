// Package blocks exposes the file server client as host-registered blocks:
// opcodes taking string arguments and producing a string, a boolean or
// nothing. All coercion between host strings and client calls happens here.
package blocks
