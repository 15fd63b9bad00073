// Package routepath compiles route path patterns and matches them against
// concrete URL paths.
//
// A pattern is a "/"-delimited list of segments. A segment that starts with
// ":" or is fully wrapped in brackets declares a named parameter; any other
// segment is matched literally:
//
//	/users/:id        → params["id"]
//	/users/[id]       → params["id"]
//	/todos/static     → literal only
//
// A parameter matches one non-empty run of non-"/" characters and binds the
// percent-decoded value. There are no catch-all segments: a pattern and a
// path must have the same number of segments to match.
package routepath
