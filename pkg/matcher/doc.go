/*
Package matcher selects which edge a session follows for a given user message.

Scoring is purely lexical: every keyword of every candidate edge is compared with
the whole message using a case-insensitive Levenshtein distance. All
(edge, keyword) pairs are pooled and ranked together; there is no per-edge
reduction before ranking, and ties keep enumeration order.
*/
package matcher
