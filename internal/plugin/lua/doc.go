// Package lua runs cell transform scripts in a sandboxed Lua state.
//
// A transform is a global Lua function taking the cell text and returning
// the new text:
//
//	function initials(value, row, col)
//	    return (value:gsub("(%w)%w*%s*", "%1"))
//	end
//
// Row and column are 1-based. Returning nil leaves the cell unchanged;
// numbers and booleans are converted to text. Only the base, table, string
// and math libraries are available, and every call runs under a timeout.
// The functions trim, upper and lower are always defined.
package lua
