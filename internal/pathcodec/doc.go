// Package pathcodec converts filesystem paths to opaque URL tokens and back.
//
// Tokens are the hex encoding of the UTF-8 bytes of "folder/filename". This is
// obfuscation so raw paths never appear in URLs; it is reversible by design
// and is not an access-control boundary.
package pathcodec
