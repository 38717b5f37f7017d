// Package fingerprint holds the input plumbing shared by the crosscheck
// fingerprint tools: opening local or gs:// paths, transparent decompression,
// and delimiter detection. The swap calling itself lives in the caller
// package.
package fingerprint
